package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mutscore.dev/pkg/mutscore/internal/domain"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

func TestSummaryCmd(t *testing.T) {
	t.Run("reports with a class lookup", func(t *testing.T) {
		cmd, mockWorkflow := newMockedRoot(t, newSummaryCmd())

		mockWorkflow.On("Summary", mock.Anything, domain.SummaryArgs{
			Tool:    "judy",
			Project: "Lang",
			Bug:     "1",
			Reports: []m.Path{"a/result.json", "b/result.json"},
			Verbose: true,
		}).Return(nil)

		cmd.SetArgs([]string{"summary", "--tool", "judy", "--project", "Lang", "--bug", "1", "-v", "a/result.json", "b/result.json"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("tool is required", func(t *testing.T) {
		cmd, _ := newMockedRoot(t, newSummaryCmd())

		cmd.SetArgs([]string{"summary", "a/result.json"})
		require.Error(t, cmd.Execute())
	})

	t.Run("class and project are exclusive", func(t *testing.T) {
		cmd, _ := newMockedRoot(t, newSummaryCmd())

		cmd.SetArgs([]string{"summary", "-t", "judy", "-c", "a.B", "--project", "Lang", "--bug", "1", "r.json"})
		require.Error(t, cmd.Execute())
	})
}

func TestCompareCmd(t *testing.T) {
	cmd, mockWorkflow := newMockedRoot(t, newCompareCmd())

	mockWorkflow.On("Compare", mock.Anything, domain.CompareArgs{
		Tool:      "major",
		Reports:   []m.Path{"g1/major", "g2/major", "dev/major"},
		BaseIndex: 2,
		Killed:    true,
	}).Return(nil)

	cmd.SetArgs([]string{"compare", "-t", "major", "-b", "2", "--killed", "g1/major", "g2/major", "dev/major"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd(t *testing.T) {
	cmd, mockWorkflow := newMockedRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Project: "Lang", Tool: "pit", RunID: "abc"}).Return(nil)

	cmd.SetArgs([]string{"view", "--project", "Lang", "-t", "pit", "--run", "abc"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RejectsArguments(t *testing.T) {
	cmd, _ := newMockedRoot(t, newViewCmd())

	cmd.SetArgs([]string{"view", "extra"})
	require.Error(t, cmd.Execute())
}

func TestToolsCmd(t *testing.T) {
	cmd, mockWorkflow := newMockedRoot(t, newToolsCmd())
	mockWorkflow.On("Tools", mock.Anything).Return(nil)

	cmd.SetArgs([]string{"tools"})
	require.NoError(t, cmd.Execute())
}
