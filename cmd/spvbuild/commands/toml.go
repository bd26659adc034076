package commands

import (
	"github.com/spf13/cobra"
	"github.com/spvbuild/spvbuild/internal/adapters/config"
)

func (c *CLI) newTomlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toml [file]",
		Short: "Compile a shader crate using parameters from a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.BatchFilename
			if len(args) == 1 {
				path = args[0]
			}
			return c.app.BuildBatch(cmd.Context(), path)
		},
	}
}
