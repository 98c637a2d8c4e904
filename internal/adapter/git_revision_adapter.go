package adapter

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// RevisionAdapter resolves the source revision a checkout is at.
type RevisionAdapter interface {
	// Revision returns the HEAD commit hash of the repository containing dir,
	// or an empty string when dir is not under version control.
	Revision(dir m.Path) (string, error)
}

// GitRevisionAdapter reads revisions with go-git, without a git binary.
type GitRevisionAdapter struct{}

// NewGitRevisionAdapter constructs a GitRevisionAdapter.
func NewGitRevisionAdapter() *GitRevisionAdapter {
	return &GitRevisionAdapter{}
}

// Revision opens the enclosing repository and returns its HEAD hash.
func (a *GitRevisionAdapter) Revision(dir m.Path) (string, error) {
	repo, err := git.PlainOpenWithOptions(string(dir), &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD of %s: %w", dir, err)
	}

	return head.Hash().String(), nil
}
