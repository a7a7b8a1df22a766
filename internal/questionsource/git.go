package questionsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
)

// SyncGit clones url into dir, or pulls the latest changes when dir
// already holds a clone.
func SyncGit(ctx context.Context, logger *slog.Logger, url, dir string) error {
	_, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		logger.Info("cloning question repository", "url", url, "dir", dir)
		_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url})
		if err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("stat %s: %w", dir, err)
	}

	logger.Info("pulling question repository", "dir", dir)
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree at %s: %w", dir, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull %s: %w", dir, err)
	}
	return nil
}
