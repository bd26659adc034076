package commands

import (
	"github.com/spf13/cobra"
	"github.com/spvbuild/spvbuild/internal/core/domain"
)

// addToolchainFlags registers the flags selecting a toolchain pairing.
// Empty values fall back to the settings file, then to the built-in
// defaults.
func addToolchainFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "codegen backend dependency descriptor (registry version or source table)")
	cmd.Flags().String("toolchain", "", "host toolchain channel to compile the pairing with")
	cmd.Flags().Bool("force-rebuild", false, "rebuild the pairing even when it is already installed")
}

func toolchainSpecFromFlags(cmd *cobra.Command) domain.ToolchainSpec {
	backend, _ := cmd.Flags().GetString("backend")
	channel, _ := cmd.Flags().GetString("toolchain")
	force, _ := cmd.Flags().GetBool("force-rebuild")
	return domain.ToolchainSpec{
		Descriptor: backend,
		Channel:    channel,
		Force:      force,
	}
}

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the shader compiler toolchain pairing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Install(cmd.Context(), toolchainSpecFromFlags(cmd))
			return err
		},
	}
	addToolchainFlags(cmd)
	return cmd
}
