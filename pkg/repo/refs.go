package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/vcsync/pkg/object"
)

// maxRefHops bounds symbolic reference chains. A malformed repository can
// make HEAD point at a ref that points back at HEAD; past this many hops
// resolution fails instead of recursing forever.
const maxRefHops = 32

const symrefPrefix = "ref: "

// ResolveRef follows a reference to an object hash. The ref file holds
// either a hash or a "ref: <path>" indirection; exactly one trailing
// newline is stripped before inspection. A missing ref file reports
// object.ErrNotFound.
func (r *Repo) ResolveRef(ref string) (object.Hash, error) {
	start := ref
	for hop := 0; hop < maxRefHops; hop++ {
		data, err := os.ReadFile(r.path(filepath.FromSlash(ref)))
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("resolve ref %q: %w", ref, object.ErrNotFound)
			}
			return "", fmt.Errorf("resolve ref %q: %w", ref, err)
		}
		content := strings.TrimSuffix(string(data), "\n")

		if strings.HasPrefix(content, symrefPrefix) {
			ref = strings.TrimPrefix(content, symrefPrefix)
			continue
		}
		return object.Hash(content), nil
	}
	return "", fmt.Errorf("resolve ref %q: symbolic reference chain exceeds %d hops", start, maxRefHops)
}

// CreateRef writes a hash to the named ref file under .vcsync/, creating
// parent directories as needed.
func (r *Repo) CreateRef(name string, h object.Hash) error {
	refPath := r.path(filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("create ref %q: mkdir: %w", name, err)
	}
	if err := os.WriteFile(refPath, []byte(string(h)+"\n"), 0o644); err != nil {
		return fmt.Errorf("create ref %q: %w", name, err)
	}
	return nil
}

// ListRefs lists references under .vcsync/refs, fully resolved. Names are
// relative to the refs root, e.g. "heads/master", "tags/v1", in sorted
// order.
func (r *Repo) ListRefs(prefix string) (map[string]object.Hash, error) {
	root := r.path("refs")
	dir := root
	if strings.TrimSpace(prefix) != "" {
		dir = filepath.Join(root, filepath.FromSlash(prefix))
	}

	refs := make(map[string]object.Hash)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		h, err := r.ResolveRef("refs/" + name)
		if err != nil {
			return err
		}
		refs[name] = h
		return nil
	})
	if os.IsNotExist(err) {
		return refs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	return refs, nil
}
