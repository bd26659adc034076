package domain

// Defaults used when neither flags nor the settings file pin a toolchain.
const (
	// DefaultBackend is the codegen backend dependency descriptor, as it
	// appears in the generated helper crate's dependency table.
	DefaultBackend = "0.9.0"

	// DefaultChannel is the host toolchain channel the default backend
	// release is built against.
	DefaultChannel = "nightly-2024-04-24"

	// DefaultShaderTarget is the target format identifier used when the
	// caller does not request one.
	DefaultShaderTarget = "spirv-unknown-vulkan1.2"
)

// ToolchainSpec identifies one {backend dylib, helper binary} pairing.
type ToolchainSpec struct {
	// Descriptor selects the backend implementation: a registry version
	// (`0.9.0`) or a source table (`{ git = "...", rev = "..." }`).
	Descriptor string

	// Channel is the host toolchain channel the pairing is compiled with.
	Channel string

	// Force rebuilds the pairing even when the cache already holds it.
	Force bool
}

// Signature returns the cache key for this pairing.
func (t ToolchainSpec) Signature() Signature {
	return ComputeSignature(t.Descriptor, t.Channel)
}

// Toolchain is an installed pairing, ready to drive builds.
type Toolchain struct {
	// BackendPath is the absolute path to the codegen backend dylib.
	BackendPath string

	// HelperPath is the absolute path to the helper executable.
	HelperPath string
}
