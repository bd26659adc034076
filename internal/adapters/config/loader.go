package config

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spvbuild/spvbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// BatchFilename is the default TOML batch configuration file.
const BatchFilename = "spvbuild.toml"

// Batch is a fully resolved batch configuration: the toolchain pairing
// to install and the build to run with it.
type Batch struct {
	Spec  domain.ToolchainSpec
	Build BuildParams
}

// BuildParams are the build settings read from the [build] table. Paths
// are absolute, resolved against the configuration file's directory.
type BuildParams struct {
	ShaderCrate       string
	ShaderTarget      string
	NoDefaultFeatures bool
	Features          []string
	OutputDir         string
}

type batchFile struct {
	Install installTable `toml:"install"`
	Build   buildTable   `toml:"build"`
}

type installTable struct {
	Backend   string `toml:"backend"`
	Toolchain string `toml:"toolchain"`
	Force     bool   `toml:"force"`
}

type buildTable struct {
	ShaderCrate       string   `toml:"shader-crate"`
	ShaderTarget      string   `toml:"shader-target"`
	NoDefaultFeatures bool     `toml:"no-default-features"`
	Features          []string `toml:"features"`
	OutputDir         string   `toml:"output-dir"`
}

// LoadBatch reads a batch configuration file. Unknown keys are rejected
// so a typoed table does not silently fall back to defaults.
func LoadBatch(path string) (Batch, error) {
	var raw batchFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Batch{}, zerr.With(zerr.Wrap(err, "failed to parse batch file"), "path", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Batch{}, zerr.With(zerr.New("unknown key in batch file"), "key", undecoded[0].String())
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Batch{}, zerr.With(zerr.Wrap(err, "failed to resolve batch file directory"), "path", path)
	}

	b := Batch{
		Spec: domain.ToolchainSpec{
			Descriptor: raw.Install.Backend,
			Channel:    raw.Install.Toolchain,
			Force:      raw.Install.Force,
		},
		Build: BuildParams{
			ShaderCrate:       resolveAgainst(base, raw.Build.ShaderCrate),
			ShaderTarget:      raw.Build.ShaderTarget,
			NoDefaultFeatures: raw.Build.NoDefaultFeatures,
			Features:          raw.Build.Features,
			OutputDir:         resolveAgainst(base, raw.Build.OutputDir),
		},
	}
	if b.Build.ShaderCrate == "" {
		return Batch{}, zerr.With(zerr.New("batch file has no build.shader-crate"), "path", path)
	}
	// Output defaults next to the batch file, mirroring how the build
	// command defaults to the working directory.
	if b.Build.OutputDir == "" {
		b.Build.OutputDir = base
	}
	return b, nil
}

// resolveAgainst resolves a possibly relative path against the batch
// file's directory, so a batch file behaves the same regardless of the
// caller's working directory.
func resolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
