package domain

import "go.trai.ch/zerr"

var (
	// ErrShaderCrateNotFound is returned when the shader crate path does not
	// exist after canonicalization.
	ErrShaderCrateNotFound = zerr.New("shader crate does not exist")

	// ErrMissingRawManifest is returned when the helper exits successfully but
	// leaves no raw manifest behind.
	ErrMissingRawManifest = zerr.New("helper reported success but produced no raw manifest")

	// ErrBuildFailed is returned when the helper subprocess exits non-zero.
	ErrBuildFailed = zerr.New("shader build failed")

	// ErrInstallFailed is returned when compiling the toolchain pairing fails.
	ErrInstallFailed = zerr.New("toolchain install failed")

	// ErrEntryIncomplete is returned when a cache entry is missing one of its
	// two published artifacts.
	ErrEntryIncomplete = zerr.New("cache entry is missing an artifact")

	// ErrNoFileName is returned when an artifact path in the raw manifest has
	// no extractable file name.
	ErrNoFileName = zerr.New("artifact path has no file name")
)
