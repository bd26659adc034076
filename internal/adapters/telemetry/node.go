package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/internal/adapters/telemetry/progrock"
	"github.com/spvbuild/spvbuild/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

// EnvProgress selects the progrock recorder instead of the pass-through
// sink when set to any non-empty value.
const EnvProgress = "SPVBUILD_PROGRESS"

// FromEnv returns the telemetry implementation selected by the
// environment. The default is the pass-through sink, which keeps
// subprocess diagnostics on the parent's own streams.
func FromEnv() ports.Telemetry {
	if os.Getenv(EnvProgress) != "" {
		return progrock.New()
	}
	return NewNoOp()
}

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return FromEnv(), nil
		},
	})
}
