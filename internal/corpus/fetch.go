package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultDataRepo is the upstream decklist cache.
const DefaultDataRepo = "https://github.com/barrins-project/mtg_decklist_cache.git"

// Fetcher clones or updates the corpus repository with git.
type Fetcher struct {
	DataDir string
	RepoURL string
	Logger  *slog.Logger

	// Git is the git executable. Defaults to "git".
	Git string
}

// Fetch updates DataDir with `git pull --ff-only` when it is already a
// checkout, otherwise makes a shallow clone of RepoURL into it.
func (f *Fetcher) Fetch(ctx context.Context) error {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	repoURL := f.RepoURL
	if repoURL == "" {
		repoURL = DefaultDataRepo
	}

	if _, err := os.Stat(filepath.Join(f.DataDir, ".git")); err == nil {
		logger.Info("Updating data repository", "dir", f.DataDir)
		if err := f.run(ctx, f.DataDir, "pull", "--ff-only"); err != nil {
			return fmt.Errorf("git pull: %w", err)
		}
	} else {
		logger.Info("Cloning data repository", "dir", f.DataDir, "repo", repoURL)
		if parent := filepath.Dir(f.DataDir); parent != "" {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
		}
		if err := f.run(ctx, "", "clone", "--depth=1", repoURL, f.DataDir); err != nil {
			return fmt.Errorf("git clone: %w", err)
		}
	}

	logger.Info("Data repository ready", "dir", f.DataDir)
	return nil
}

func (f *Fetcher) run(ctx context.Context, dir string, args ...string) error {
	git := f.Git
	if git == "" {
		git = "git"
	}

	cmd := exec.CommandContext(ctx, git, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
