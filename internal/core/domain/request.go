package domain

// BuildRequest describes one shader-crate build. Values are copied in and
// never shared between concurrent builds.
type BuildRequest struct {
	// Toolchain is the installed pairing that performs the compilation.
	Toolchain Toolchain

	// ShaderCrate is the path to the source crate to compile.
	ShaderCrate string

	// ShaderTarget is the backend output format identifier, e.g.
	// "spirv-unknown-vulkan1.2".
	ShaderTarget string

	// TargetSpecPath is the format-specific target specification file,
	// resolved as <target-spec-dir>/<ShaderTarget>.json.
	TargetSpecPath string

	// NoDefaultFeatures disables the crate's default feature set.
	NoDefaultFeatures bool

	// Features lists explicitly enabled crate features.
	Features []string

	// OutputDir receives the compiled artifacts and the final manifest.
	OutputDir string
}

// HelperArgs is the wire form of a BuildRequest: a pretty-printed JSON
// object passed to the helper subprocess as its single argument.
type HelperArgs struct {
	DylibPath         string   `json:"dylib_path"`
	ShaderCrate       string   `json:"shader_crate"`
	ShaderTarget      string   `json:"shader_target"`
	PathToTargetSpec  string   `json:"path_to_target_spec"`
	NoDefaultFeatures bool     `json:"no_default_features"`
	Features          []string `json:"features"`
	OutputDir         string   `json:"output_dir"`
}

// HelperArgs converts the request into its subprocess wire form.
func (r BuildRequest) HelperArgs() HelperArgs {
	features := r.Features
	if features == nil {
		features = []string{}
	}
	return HelperArgs{
		DylibPath:         r.Toolchain.BackendPath,
		ShaderCrate:       r.ShaderCrate,
		ShaderTarget:      r.ShaderTarget,
		PathToTargetSpec:  r.TargetSpecPath,
		NoDefaultFeatures: r.NoDefaultFeatures,
		Features:          features,
		OutputDir:         r.OutputDir,
	}
}
