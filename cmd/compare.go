package cmd

import (
	"github.com/spf13/cobra"
	"mutscore.dev/pkg/mutscore/internal/domain"
)

var compareToolFlag string
var compareClassFlag string
var compareProjectFlag string
var compareBugFlag string
var compareBaseIndexFlag int
var compareKilledFlag bool

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare --tool T [reports...]",
		Short: "Diff the mutants of several reports",
		Long: `Compare the live mutants of several reports of the same engine against
one base report and print a unified diff per report.

With --killed the killed mutants are compared instead; Judy and Jumble
reports do not describe them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Compare(cmd.Context(), domain.CompareArgs{
				Tool:      compareToolFlag,
				Class:     compareClassFlag,
				Project:   compareProjectFlag,
				Bug:       compareBugFlag,
				Reports:   parsePaths(args),
				BaseIndex: compareBaseIndexFlag,
				Killed:    compareKilledFlag,
			})
		},
	}

	configureReportFlags(cmd, &compareToolFlag, &compareClassFlag, &compareProjectFlag, &compareBugFlag)
	cmd.Flags().IntVarP(&compareBaseIndexFlag, "base-index", "b", 0, "position of the base report among the arguments")
	cmd.Flags().BoolVarP(&compareKilledFlag, "killed", "k", false, "compare killed mutants instead of live ones")

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
