package ports

import "github.com/spvbuild/spvbuild/internal/core/domain"

// CacheStore owns the process-wide cache root holding installed
// toolchain pairings and target specification files. All cache paths go
// through this interface; no other code derives them.
type CacheStore interface {
	// Root returns the cache root directory, creating it if missing.
	Root() (string, error)

	// EntryDir returns the installation directory for a signature. The
	// directory is not created.
	EntryDir(sig domain.Signature) (string, error)

	// Installed reports whether both artifacts of the pairing exist
	// under EntryDir.
	Installed(sig domain.Signature) (bool, error)

	// Toolchain returns the artifact paths for an installed signature.
	Toolchain(sig domain.Signature) (domain.Toolchain, error)

	// TargetSpecDir returns the directory holding the backend output
	// format specification files, creating it if missing.
	TargetSpecDir() (string, error)

	// InstalledSignatures lists every signature with a complete entry,
	// sorted lexically.
	InstalledSignatures() ([]domain.Signature, error)
}
