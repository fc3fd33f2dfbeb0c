package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/vcsync/pkg/object"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at path: the .vcsync/ directory with
// objects/, refs/heads/, refs/tags/, branches/, a description file, a
// default config, and HEAD pointing at refs/heads/master. Returns an
// error if a repository already exists there.
func Init(path string) (*Repo, error) {
	vcDir := filepath.Join(path, VCDirName)

	if _, err := os.Stat(vcDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", vcDir)
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("init: %s is not a directory", path)
	}

	dirs := []string{
		filepath.Join(vcDir, "objects"),
		filepath.Join(vcDir, "refs", "heads"),
		filepath.Join(vcDir, "refs", "tags"),
		filepath.Join(vcDir, "branches"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := os.WriteFile(filepath.Join(vcDir, "description"), []byte(defaultDescription), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}
	if err := os.WriteFile(filepath.Join(vcDir, "HEAD"), []byte("ref: refs/heads/master\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	r := &Repo{
		RootDir: path,
		VCDir:   vcDir,
		Store:   object.NewStore(vcDir),
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return r, nil
}

// Open searches upward from path for a .vcsync/ directory and opens the
// repository, validating its config.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		vcDir := filepath.Join(cur, VCDirName)
		info, err := os.Stat(vcDir)
		if err == nil && info.IsDir() {
			r := &Repo{
				RootDir: cur,
				VCDir:   vcDir,
				Store:   object.NewStore(vcDir),
			}
			cfg, err := r.ReadConfig()
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			if v := cfg.Core.RepositoryFormatVersion; v != 0 {
				return nil, fmt.Errorf("open: unsupported repositoryformatversion %d", v)
			}
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a vcsync repository (or any parent up to /)")
		}
		cur = parent
	}
}
