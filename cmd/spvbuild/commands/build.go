package commands

import (
	"github.com/spf13/cobra"
	"github.com/spvbuild/spvbuild/internal/adapters/config"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile a shader crate to SPIR-V",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crate, _ := cmd.Flags().GetString("shader-crate")
			target, _ := cmd.Flags().GetString("shader-target")
			noDefault, _ := cmd.Flags().GetBool("no-default-features")
			features, _ := cmd.Flags().GetStringSlice("features")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			params := config.BuildParams{
				ShaderCrate:       crate,
				ShaderTarget:      target,
				NoDefaultFeatures: noDefault,
				Features:          features,
				OutputDir:         outputDir,
			}
			return c.app.Build(cmd.Context(), toolchainSpecFromFlags(cmd), params)
		},
	}
	addToolchainFlags(cmd)
	cmd.Flags().String("shader-crate", "./", "path to the shader crate to compile")
	cmd.Flags().String("shader-target", "", "shader target format identifier")
	cmd.Flags().Bool("no-default-features", false, "disable the crate's default features")
	cmd.Flags().StringSlice("features", nil, "crate features to enable")
	cmd.Flags().StringP("output-dir", "o", "./", "directory for the compiled shaders and manifest")
	return cmd
}
