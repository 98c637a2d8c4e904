package cmd

import (
	"github.com/spf13/cobra"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// backupCmd represents the backup command.
var backupCmd = newBackupCmd()

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <checkout>",
		Short: "Move the developer test suite of a checkout aside",
		Long: `Move the developer test suite of a checkout into a dev_backup directory
next to it. Nothing happens when a backup already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Backup(cmd.Context(), domain.CheckoutArgs{Checkout: m.Path(args[0])})
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <checkout>",
		Short: "Put the developer test suite of a checkout back",
		Long: `Replace the test directory of a checkout with the developer suite saved
by "backup".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Restore(cmd.Context(), domain.CheckoutArgs{Checkout: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(backupCmd, restoreCmd)
}
