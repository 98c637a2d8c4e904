package adapter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

func TestGitRevisionAdapter_Revision(t *testing.T) {
	t.Run("returns the HEAD hash from a subdirectory", func(t *testing.T) {
		root := t.TempDir()

		repo, err := git.PlainInit(root, false)
		require.NoError(t, err)

		mustMkdir(t, filepath.Join(root, "src", "test"))
		writeTestFile(t, filepath.Join(root, "src", "test", "OptionTest.java"), "class OptionTest {}\n")

		worktree, err := repo.Worktree()
		require.NoError(t, err)

		_, err = worktree.Add("src/test/OptionTest.java")
		require.NoError(t, err)

		hash, err := worktree.Commit("initial", &git.CommitOptions{
			Author: &object.Signature{Name: "defects4j", Email: "d4j@example.com", When: time.Unix(0, 0)},
		})
		require.NoError(t, err)

		revision, err := NewGitRevisionAdapter().Revision(m.Path(filepath.Join(root, "src", "test")))
		require.NoError(t, err)
		assert.Equal(t, hash.String(), revision)
	})

	t.Run("plain directories have no revision", func(t *testing.T) {
		revision, err := NewGitRevisionAdapter().Revision(m.Path(t.TempDir()))
		require.NoError(t, err)
		assert.Empty(t, revision)
	})
}
