// Package shell provides the subprocess executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"

	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes cmd and blocks until it exits. Output streams default to
// the parent's own stdout/stderr so compiler diagnostics reach the user
// live. Context cancellation terminates the child.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) error {
	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // command assembled by trusted callers
	proc.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}

	proc.Stdout = cmd.Stdout
	if proc.Stdout == nil {
		proc.Stdout = os.Stdout
	}
	proc.Stderr = cmd.Stderr
	if proc.Stderr == nil {
		proc.Stderr = os.Stderr
	}

	e.logger.Debug("running " + cmd.Name)

	if err := proc.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(
			zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name),
			"exit_code", exitCode,
		)
	}
	return nil
}
