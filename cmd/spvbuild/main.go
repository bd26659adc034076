// Package main is the entry point for the spvbuild tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/cmd/spvbuild/commands"
	"github.com/spvbuild/spvbuild/internal/app"
	_ "github.com/spvbuild/spvbuild/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Interrupts cancel the context, which terminates any running
	// compile subprocess instead of orphaning it.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(stripSubcommandAlias(args))

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with stack trace and metadata under %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}

// stripSubcommandAlias drops a leading "gpu" argument so the tool works
// both standalone and installed as a build-tool subcommand, where the
// alias is passed through as the first argument.
func stripSubcommandAlias(args []string) []string {
	if len(args) > 0 && args[0] == "gpu" {
		return args[1:]
	}
	return args
}
