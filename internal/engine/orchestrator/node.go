package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"github.com/spvbuild/spvbuild/internal/ui"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
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
			return New(executor, log, tel, ui.New(nil)), nil
		},
	})
}
