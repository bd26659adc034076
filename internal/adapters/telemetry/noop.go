// Package telemetry provides recording adapters for install and build
// phases.
package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/spvbuild/spvbuild/internal/core/ports"
)

// NoOp implements ports.Telemetry without recording anything. Vertex
// streams pass straight through to the parent's stdout/stderr so the
// user still observes subprocess diagnostics live.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry sink.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a pass-through vertex.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, passthroughVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

type passthroughVertex struct{}

func (passthroughVertex) Stdout() io.Writer { return os.Stdout }
func (passthroughVertex) Stderr() io.Writer { return os.Stderr }
func (passthroughVertex) Complete(error)    {}
func (passthroughVertex) Cached()           {}
