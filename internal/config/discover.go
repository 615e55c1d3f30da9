package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ResolveOptions carries the command-line inputs that influence configuration.
type ResolveOptions struct {
	// ConfigPath is an explicit configuration file; discovery is skipped when set.
	ConfigPath string
	// Root overrides the configured source root. Relative values resolve against WorkDir.
	Root string
	// WorkDir is where discovery starts. Defaults to the process working directory.
	WorkDir string
}

// Resolve produces the effective configuration for a run: an explicit file,
// a discovered file, or pure defaults anchored at the repository root.
func Resolve(opts ResolveOptions) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workDir = wd
	}

	var cfg *Config
	path := opts.ConfigPath
	if path == "" {
		path = Discover(workDir)
	}

	if path != "" {
		parsed, err := ParseConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	} else {
		base := workDir
		if root, ok := RepositoryRoot(workDir); ok {
			base = root
		}
		cfg = Default(base)
	}

	if opts.Root != "" {
		root := opts.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(workDir, root)
		}
		cfg.Root = root
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Discover returns the first configuration file found in dir, then in the
// enclosing git worktree root. It returns an empty string when none exists.
func Discover(dir string) string {
	if found := findConfigIn(dir); found != "" {
		return found
	}
	if root, ok := RepositoryRoot(dir); ok && root != dir {
		return findConfigIn(root)
	}
	return ""
}

// RepositoryRoot returns the worktree root of the git repository containing dir.
func RepositoryRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to anchor defaults to.
		return "", false
	}

	return worktree.Filesystem.Root(), true
}

func findConfigIn(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
