package domain

import "runtime"

// BackendFilename returns the platform name of the codegen backend's
// loadable binary.
func BackendFilename() string {
	switch runtime.GOOS {
	case "windows":
		return "rustc_codegen_spirv.dll"
	case "darwin":
		return "librustc_codegen_spirv.dylib"
	default:
		return "librustc_codegen_spirv.so"
	}
}

// HelperFilename returns the platform name of the helper executable.
func HelperFilename() string {
	if runtime.GOOS == "windows" {
		return "spirv-builder-cli.exe"
	}
	return "spirv-builder-cli"
}
