package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const suiteHelp = `The suite installed in the checkout is chosen with:
  --group G            a single student group of the tool suite
  --no-groups          no student group at all
  --with-dev           plus the whole developer suite
  --with-single-dev    plus the developer test of the relevant class
  --with-relevant-dev  plus the developer tests listed in relevant/tests.txt`

// runFlags holds the flags shared by the tool-driving commands.
type runFlags struct {
	tools           []string
	group           string
	noGroups        bool
	withDev         bool
	withSingleDev   bool
	withRelevantDev bool
	skipSetup       bool
	mutations       string
	stdout          bool
	stderr          bool
}

func (f *runFlags) args(checkout string) domain.RunArgs {
	mutations := f.mutations
	if mutations == "" {
		mutations = viper.GetString(mutationsConfigKey)
	}

	return domain.RunArgs{
		Checkout: m.Path(checkout),
		Tools:    f.tools,
		Suite: m.SuiteOptions{
			Group:           f.group,
			NoGroups:        f.noGroups,
			WithDev:         f.withDev,
			WithSingleDev:   f.withSingleDev,
			WithRelevantDev: f.withRelevantDev,
			SkipSetup:       f.skipSetup,
		},
		Mutations: mutations,
		Stdout:    f.stdout,
		Stderr:    f.stderr,
	}
}

type runAction func(w domain.Workflow, ctx context.Context, args domain.RunArgs) error

// mutantsCmd represents the mutants command.
var mutantsCmd = newMutantsCmd()

// coverageCmd represents the coverage command.
var coverageCmd = newCoverageCmd()

// mutscoreCmd represents the mutscore command.
var mutscoreCmd = newMutScoreCmd()

// runCmd represents the run command.
var runCmd = newRunCmd()

func newMutantsCmd() *cobra.Command {
	return newToolCmd("mutants <checkout>", "Generate the mutants of the relevant class",
		`Run the selected engines against a placeholder test, so the reports list
every mutant of the relevant class without scoring them.`,
		domain.Workflow.Mutants)
}

func newCoverageCmd() *cobra.Command {
	return newToolCmd("coverage <checkout>", "Measure defects4j coverage of the tool suites",
		`Install the suite of each selected tool and run "defects4j coverage".
The coverage.xml file is renamed after the tool and group.

`+suiteHelp,
		domain.Workflow.Coverage)
}

func newMutScoreCmd() *cobra.Command {
	return newToolCmd("mutscore <checkout>", "Compute mutation scores of the tool suites",
		`Install the suite of each selected tool, run the engine and record the
resulting mutation score in the tool output directory and the score ledger.

`+suiteHelp,
		domain.Workflow.MutationScores)
}

func newRunCmd() *cobra.Command {
	return newToolCmd("run <checkout>", "Run the engines and keep their raw reports",
		`Install the suite of each selected tool, run the engine and collect its
report under a directory named after the suite.

`+suiteHelp,
		domain.Workflow.RunTools)
}

func newToolCmd(use, short, long string, action runAction) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(currentWorkflow(cmd), cmd.Context(), flags.args(args[0]))
		},
	}

	configureRunFlags(cmd, flags)

	return cmd
}

func configureRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringSliceVarP(&flags.tools, toolsFlagName, "t", nil, "engines to run (judy, jumble, major, pit); every engine when empty")
	cmd.Flags().StringVarP(&flags.group, groupFlagName, "g", "", "student group to install")
	cmd.Flags().BoolVar(&flags.noGroups, noGroupsFlagName, false, "install no student group")
	cmd.Flags().BoolVar(&flags.withDev, withDevFlagName, false, "add the whole developer suite")
	cmd.Flags().BoolVar(&flags.withSingleDev, withSingleDevFlagName, false, "add the developer test of the relevant class")
	cmd.Flags().BoolVar(&flags.withRelevantDev, withRelevantDevFlagName, false, "add the relevant developer tests")
	cmd.Flags().BoolVar(&flags.skipSetup, skipSetupFlagName, false, "reuse the suite already installed (coverage)")
	cmd.Flags().BoolVar(&flags.stdout, stdoutFlagName, false, "echo the engine standard output")
	cmd.Flags().BoolVar(&flags.stderr, stderrFlagName, false, "echo the engine standard error")

	cmd.Flags().StringVar(&flags.mutations, mutationsFlagName, "", "Jumble mutation operators")

	cmd.MarkFlagsMutuallyExclusive(groupFlagName, noGroupsFlagName)
	cmd.MarkFlagsMutuallyExclusive(withDevFlagName, withSingleDevFlagName, withRelevantDevFlagName)
}

func init() {
	rootCmd.AddCommand(mutantsCmd, coverageCmd, mutscoreCmd, runCmd)
}
