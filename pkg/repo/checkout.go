package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/vcsync/pkg/object"
)

// Checkout materializes the tree reachable from name (a commit or tree)
// into dir. The directory must be empty or absent; checkout never
// overwrites existing files.
func (r *Repo) Checkout(name, dir string) error {
	treeHash, err := r.Find(name, object.TypeTree, true)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("checkout: %s is not a directory", dir)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("checkout: %s is not empty", dir)
		}
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("checkout: mkdir %s: %w", dir, err)
	}

	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return r.checkoutTree(tree, dir)
}

func (r *Repo) checkoutTree(tree *object.Tree, dir string) error {
	for _, entry := range tree.Entries {
		dest := filepath.Join(dir, string(entry.Path))

		if entry.IsDir() {
			sub, err := r.Store.ReadTree(entry.Hash)
			if err != nil {
				return err
			}
			if err := os.Mkdir(dest, 0o755); err != nil {
				return fmt.Errorf("checkout: mkdir %s: %w", dest, err)
			}
			if err := r.checkoutTree(sub, dest); err != nil {
				return err
			}
			continue
		}

		blob, err := r.Store.ReadBlob(entry.Hash)
		if err != nil {
			return err
		}
		mode := os.FileMode(0o644)
		if entry.Mode == object.TreeModeExecutable {
			mode = 0o755
		}
		if err := os.WriteFile(dest, blob.Data, mode); err != nil {
			return fmt.Errorf("checkout: write %s: %w", dest, err)
		}
	}
	return nil
}
