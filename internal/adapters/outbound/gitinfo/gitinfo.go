package gitinfo

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

// IsGitRepo reports whether projectPath is inside a git worktree.
func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ChangedFiles returns the absolute paths of files that are modified, added,
// renamed or untracked in the worktree. Deleted files are left out since
// there is nothing to read.
func (g *GitInfoAdapter) ChangedFiles(projectPath string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	root := wt.Filesystem.Root()
	var files []string
	for path, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
	}
	sort.Strings(files)
	return files, nil
}
