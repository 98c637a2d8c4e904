package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

var bulkPlanFlag string
var bulkToolsFlag []string
var bulkParallelFlag int
var bulkMutationsFlag string
var bulkStdoutFlag bool
var bulkStderrFlag bool

// bulkCmd represents the bulk command.
var bulkCmd = newBulkCmd()

func newBulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk [action] [checkouts...]",
		Short: "Run an action over many checkouts and every suite combination",
		Long: `Run an action over several checkouts. Tool-driving actions are repeated
for the developer test alone and for every student group found, with and
without the developer test.

Arguments left out are read from the YAML file given with --plan:

  action: mutscore
  checkouts: [/work/lang_1_fixed, /work/cli_32_buggy]
  tools: [pit, major]
  parallel: 2`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bulkArgs := domain.BulkArgs{
				Plan:      m.Path(bulkPlanFlag),
				Tools:     bulkToolsFlag,
				Mutations: bulkMutationsFlag,
				Stdout:    bulkStdoutFlag,
				Stderr:    bulkStderrFlag,
			}

			// Plan values win over config and env, explicit flags win over the plan.
			if cmd.Flags().Changed(runParallelFlagName) || bulkPlanFlag == "" {
				bulkArgs.Parallel = viper.GetInt(runParallelConfigKey)
			}

			if bulkArgs.Mutations == "" && bulkPlanFlag == "" {
				bulkArgs.Mutations = viper.GetString(mutationsConfigKey)
			}

			if len(args) > 0 {
				action, err := domain.ParseAction(args[0])
				if err != nil {
					return err
				}

				bulkArgs.Action = action
				bulkArgs.Checkouts = parsePaths(args[1:])
			}

			return currentWorkflow(cmd).Bulk(cmd.Context(), bulkArgs)
		},
	}

	configureBulkFlags(cmd)

	return cmd
}

func configureBulkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bulkPlanFlag, planFlagName, "", "YAML plan providing the arguments left out")
	cmd.Flags().StringSliceVarP(&bulkToolsFlag, toolsFlagName, "t", nil, "engines to run; every engine when empty")
	cmd.Flags().IntVarP(&bulkParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of checkouts processed at once")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().StringVar(&bulkMutationsFlag, mutationsFlagName, "", "Jumble mutation operators")
	cmd.Flags().BoolVar(&bulkStdoutFlag, stdoutFlagName, false, "echo the engine standard output")
	cmd.Flags().BoolVar(&bulkStderrFlag, stderrFlagName, false, "echo the engine standard error")
}

func init() {
	rootCmd.AddCommand(bulkCmd)
}
