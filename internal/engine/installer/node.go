package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (ports.Installer, error) {
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, executor, log, tel), nil
		},
	})
}
