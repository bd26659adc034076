package ports

import (
	"context"

	"github.com/spvbuild/spvbuild/internal/core/domain"
)

// Installer guarantees a working toolchain pairing exists on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// EnsureInstalled returns the artifact paths for the requested
	// pairing, building and publishing it first when the cache has no
	// complete entry or spec.Force is set. Repeated calls for an
	// installed signature are cheap no-ops.
	EnsureInstalled(ctx context.Context, spec domain.ToolchainSpec) (domain.Toolchain, error)
}
