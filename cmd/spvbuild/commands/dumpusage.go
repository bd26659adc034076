package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// newDumpUsageCmd returns the hidden command that recursively prints the
// help text of every subcommand. Used to refresh the README.
func (c *CLI) newDumpUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "dump-usage",
		Short:  "Print the help text of every subcommand",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeUsage(cmd.OutOrStdout(), c.rootCmd)
		},
	}
}

func writeUsage(w io.Writer, cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Hidden {
		return nil
	}

	title := strings.ToUpper(cmd.Name()[:1]) + cmd.Name()[1:]
	if _, err := fmt.Fprintf(w, "\n* %s\n\n", title); err != nil {
		return err
	}
	if _, err := io.WriteString(w, cmd.Short+"\n\n"+cmd.UsageString()); err != nil {
		return err
	}

	for _, sub := range cmd.Commands() {
		if err := writeUsage(w, sub); err != nil {
			return err
		}
	}
	return nil
}
