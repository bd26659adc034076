// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/spvbuild/spvbuild/internal/core/domain"
)

// Executor runs subprocesses.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and blocks until it exits. A non-zero
	// exit status is returned as an error carrying the exit code.
	// Cancelling the context terminates the child process.
	Run(ctx context.Context, cmd domain.Command) error
}
