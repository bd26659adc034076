// Package ui is the textual user-output sink for progress and status
// lines. It is distinct from the logger: these lines are the product of
// the tool, not diagnostics about it.
package ui

import (
	"fmt"
	"io"
	"os"
)

// Sink writes user-facing status lines.
type Sink struct {
	w io.Writer
}

// New creates a Sink. A nil writer defaults to stdout.
func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{w: w}
}

// Printf writes one formatted status line.
func (s *Sink) Printf(format string, args ...any) {
	fmt.Fprintf(s.w, format, args...)
}
