package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

func TestBackupCmd(t *testing.T) {
	cmd, mockWorkflow := newMockedRoot(t, newBackupCmd())
	mockWorkflow.On("Backup", mock.Anything, domain.CheckoutArgs{Checkout: m.Path("/work/lang_1_fixed")}).Return(nil)

	cmd.SetArgs([]string{"backup", "/work/lang_1_fixed"})
	require.NoError(t, cmd.Execute())
}

func TestRestoreCmd(t *testing.T) {
	t.Run("restores the backup", func(t *testing.T) {
		cmd, mockWorkflow := newMockedRoot(t, newRestoreCmd())
		mockWorkflow.On("Restore", mock.Anything, domain.CheckoutArgs{Checkout: m.Path("/work/lang_1_fixed")}).Return(nil)

		cmd.SetArgs([]string{"restore", "/work/lang_1_fixed"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("propagates workflow errors", func(t *testing.T) {
		cmd, mockWorkflow := newMockedRoot(t, newRestoreCmd())
		mockWorkflow.On("Restore", mock.Anything, mock.Anything).Return(errors.New("no backup found"))

		cmd.SetArgs([]string{"restore", "/work/lang_1_fixed"})
		require.EqualError(t, cmd.Execute(), "no backup found")
	})

	t.Run("needs a checkout", func(t *testing.T) {
		cmd, _ := newMockedRoot(t, newRestoreCmd())

		cmd.SetArgs([]string{"restore"})
		require.Error(t, cmd.Execute())
	})
}
