package cmd

import (
	"github.com/spf13/cobra"
	"mutscore.dev/pkg/mutscore/internal/domain"
)

var summaryToolFlag string
var summaryClassFlag string
var summaryProjectFlag string
var summaryBugFlag string
var summaryMutantsFlag bool

// summaryCmd represents the summary command.
var summaryCmd = newSummaryCmd()

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary --tool T [reports...]",
		Short: "Score engine reports without running anything",
		Long: `Parse existing engine reports and print their mutation scores.

A Major report is the directory holding kill.csv and mutants.log, the
other engines take their report file. Judy reports are filtered on the
class under mutation: give it with --class, or with --project and --bug
to read the class defects4j records as modified by that bug.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Summary(cmd.Context(), domain.SummaryArgs{
				Tool:    summaryToolFlag,
				Class:   summaryClassFlag,
				Project: summaryProjectFlag,
				Bug:     summaryBugFlag,
				Reports: parsePaths(args),
				Verbose: summaryMutantsFlag,
			})
		},
	}

	configureReportFlags(cmd, &summaryToolFlag, &summaryClassFlag, &summaryProjectFlag, &summaryBugFlag)
	cmd.Flags().BoolVarP(&summaryMutantsFlag, "mutants", "v", false, "list the mutants of every report")

	return cmd
}

// configureReportFlags adds the flags selecting how reports are parsed.
func configureReportFlags(cmd *cobra.Command, tool, class, project, bug *string) {
	cmd.Flags().StringVarP(tool, "tool", "t", "", "engine that produced the reports")
	cmd.Flags().StringVarP(class, "class", "c", "", "fully qualified class under mutation")
	cmd.Flags().StringVar(project, "project", "", "defects4j project id used to look the class up")
	cmd.Flags().StringVar(bug, "bug", "", "defects4j bug id used to look the class up")
	cobra.CheckErr(cmd.MarkFlagRequired("tool"))
	cmd.MarkFlagsRequiredTogether("project", "bug")
	cmd.MarkFlagsMutuallyExclusive("class", "project")
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
