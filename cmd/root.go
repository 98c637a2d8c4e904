// Package cmd provides the root command and CLI setup for mutscore.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"mutscore.dev/pkg/mutscore/internal/adapter"
	"mutscore.dev/pkg/mutscore/internal/controller"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// workflow is built on first use so commands that never touch a checkout
// do not open the score ledger. Tests replace it with a mock.
var workflow domain.Workflow
var scoreStore adapter.ScoreStore

var outputDirFlag string
var verboseFlag bool
var logFileFlag string
var storePathFlag string
var suitesRootFlag string
var defects4jBinFlag string

const rootLongDescription = `mutscore drives the Judy, Jumble, Major and Pit mutation engines against
defects4j checkouts, swaps student and developer test suites in and out of
them and turns every engine report into the same mutation score record.

Scores are appended to a local ledger that "mutscore view" reads back.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mutscore",
		Short:        "Mutation score experiments on defects4j checkouts",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"directory, inside each checkout, collecting the engine reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().BoolVar(&verboseFlag, verboseFlagName, viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().StringVar(&storePathFlag, storeFlagName, viper.GetString(storeConfigKey), "score ledger database")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(storeFlagName), storeConfigKey)

	cmd.PersistentFlags().StringVar(&suitesRootFlag, suitesFlagName, viper.GetString(suitesConfigKey), "directory holding the <project>_tests suite trees")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(suitesFlagName), suitesConfigKey)

	cmd.PersistentFlags().StringVar(&defects4jBinFlag, defects4jFlagName, viper.GetString(defects4jConfigKey), "defects4j executable")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(defects4jFlagName), defects4jConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// currentWorkflow returns the shared workflow, wiring it on first use.
func currentWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	fsAdapter := adapter.NewLocalCheckoutFSAdapter()
	runner := adapter.NewLocalProcessRunnerAdapter(viper.GetString(defects4jConfigKey))

	store, err := adapter.NewSQLiteScoreStore(viper.GetString(storeConfigKey))
	if err != nil {
		slog.Warn("score ledger unavailable, scores will not be recorded", "path", viper.GetString(storeConfigKey), "error", err)
	} else {
		scoreStore = store
	}

	registry := domain.NewRegistry(domain.ToolDeps{
		FS:         fsAdapter,
		Runner:     runner,
		Scripts:    adapter.NewLocalScriptSource(viper.GetString(scriptsConfigKey)),
		OutputRoot: viper.GetString(outputConfigKey),
	})

	workflow = domain.NewWorkflow(
		fsAdapter,
		scoreStore,
		adapter.NewGitRevisionAdapter(),
		controller.NewUI(cmd, controller.IsTTY(os.Stdout)),
		registry,
		domain.NewSuiteManager(fsAdapter, adapter.NewLocalJavaSourceAdapter(), m.Path(viper.GetString(suitesConfigKey))),
		domain.NewDefects4J(fsAdapter, runner, viper.GetString(defects4jConfigKey)),
	)

	return workflow
}

func closeScoreStore() {
	if scoreStore == nil {
		return
	}

	if err := scoreStore.Close(); err != nil {
		slog.Warn("failed to close score ledger", "error", err)
	}

	scoreStore = nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()
	closeScoreStore()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
