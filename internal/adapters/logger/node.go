package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/internal/core/ports"
)

// NodeID is the unique identifier for the Logger adapter Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(os.Getenv("SPVBUILD_VERBOSE") != ""), nil
		},
	})
}
