package cmd

import (
	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command.
var toolsCmd = newToolsCmd()

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the supported mutation engines",
		Long:  "List the supported mutation engines with their launcher and the artifacts they produce.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return currentWorkflow(cmd).Tools(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
