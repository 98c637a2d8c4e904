package cmd

import (
	"github.com/spf13/cobra"
	"mutscore.dev/pkg/mutscore/internal/domain"
)

var viewProjectFlag string
var viewToolFlag string
var viewRunFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View recorded mutation scores",
		Long:  "View the mutation scores recorded in the score ledger, newest first.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return currentWorkflow(cmd).View(cmd.Context(), domain.ViewArgs{
				Project: viewProjectFlag,
				Tool:    viewToolFlag,
				RunID:   viewRunFlag,
			})
		},
	}

	cmd.Flags().StringVar(&viewProjectFlag, "project", "", "only scores of this defects4j project")
	cmd.Flags().StringVarP(&viewToolFlag, "tool", "t", "", "only scores of this engine")
	cmd.Flags().StringVar(&viewRunFlag, "run", "", "only scores of this run id")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
