package ports

import (
	"context"
	"io"
)

// Telemetry records the phases of an install or build as vertices.
type Telemetry interface {
	// Record starts a new vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Stdout and Stderr return the writers subprocess output should be
	// attached to while the vertex is open.
	Stdout() io.Writer
	Stderr() io.Writer

	// Complete marks the vertex as finished, successfully when err is
	// nil.
	Complete(err error)

	// Cached marks the vertex as satisfied from the cache.
	Cached()
}
