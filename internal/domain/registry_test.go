package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

func TestRegistry_Tools(t *testing.T) {
	registry := NewRegistry(ToolDeps{FS: adapter.NewLocalCheckoutFSAdapter()})

	t.Run("every tool in fixed order when none requested", func(t *testing.T) {
		tools, err := registry.Tools(nil, "/tmp/lang", fixtureClass)
		require.NoError(t, err)

		kinds := make([]m.ToolKind, 0, len(tools))
		for _, tool := range tools {
			kinds = append(kinds, tool.Kind())
		}

		assert.Equal(t, []m.ToolKind{m.ToolJudy, m.ToolJumble, m.ToolMajor, m.ToolPit}, kinds)
	})

	t.Run("requested subset keeps the requested order", func(t *testing.T) {
		tools, err := registry.Tools([]string{"Pit", " major "}, "/tmp/lang", fixtureClass)
		require.NoError(t, err)
		require.Len(t, tools, 2)
		assert.Equal(t, m.ToolPit, tools[0].Kind())
		assert.Equal(t, m.ToolMajor, tools[1].Kind())
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := registry.Tools([]string{"pit", "stryker"}, "/tmp/lang", fixtureClass)

		var unknown *m.UnknownToolError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "stryker", unknown.Name)
		assert.Equal(t, []string{"judy", "jumble", "major", "pit"}, unknown.Valid)
	})

	t.Run("adapters share the default output root", func(t *testing.T) {
		tool, err := registry.Tool("judy", "/tmp/lang", fixtureClass)
		require.NoError(t, err)
		assert.Equal(t, m.Path(filepath.Join("/tmp/lang", DefaultOutputRoot, "judy")), tool.OutputDir(""))
	})
}

func TestWriteScore(t *testing.T) {
	dir := t.TempDir()
	fsAdapter := adapter.NewLocalCheckoutFSAdapter()
	report := m.NewMutationReport(7, 3)

	path, err := WriteScore(fsAdapter, m.Path(dir), ScoreFileName("G1_dev"), report)
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(dir, "mutation_score_G1_dev.json")), path)

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.JSONEq(t, `{"killed":7,"live":3,"all":10,"score":0.7,"score_full":0.7}`, string(data))

	// an explicit suffix is kept and the file is overwritten
	path, err = WriteScore(fsAdapter, m.Path(dir), "mutation_score_G1_dev.json", m.NewMutationReport(0, 0))
	require.NoError(t, err)

	data, err = os.ReadFile(string(path))
	require.NoError(t, err)

	var again m.MutationReport
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, m.MutationReport{}, again)
}
