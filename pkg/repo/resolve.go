package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/vcsync/pkg/object"
)

// maxFollowHops bounds the tag/commit dereference loop in Find. A tag
// whose object field points back at itself would otherwise loop forever.
const maxFollowHops = 32

// Resolve maps a user-supplied name to candidate hashes.
//
// A blank name resolves to none. "HEAD" follows the symbolic reference
// chain to a single hash. A 40-char hex string is a complete hash,
// accepted verbatim (lower-cased). A hex string of 4 to 39 chars is an
// abbreviated hash, matched against stored object names sharing its
// two-char fan-out prefix. Anything else yields no candidates, which is
// not by itself an error.
func (r *Repo) Resolve(name string) ([]object.Hash, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	if name == "HEAD" {
		h, err := r.ResolveRef("HEAD")
		if err != nil {
			return nil, err
		}
		return []object.Hash{h}, nil
	}

	if !isHex(name) {
		return nil, nil
	}
	lower := strings.ToLower(name)

	switch {
	case len(lower) == object.HexHashLen:
		return []object.Hash{object.Hash(lower)}, nil
	case len(lower) >= 4:
		return r.Store.ListPrefix(lower[:2], lower[2:])
	default:
		return nil, nil
	}
}

// Find resolves a name to exactly one hash, optionally coercing to a
// wanted object type.
//
// Zero candidates is a not-found error; multiple candidates is an
// AmbiguousError enumerating them. With want unset the single candidate
// is returned as-is. Otherwise the object's type is checked: on mismatch
// with follow unset the result is object.ErrNoMatch; with follow set, a
// tag dereferences through its "object" header and a commit dereferences
// through its "tree" header when a tree is wanted, repeating until a
// match, a dead end, or the hop bound.
func (r *Repo) Find(name string, want object.ObjectType, follow bool) (object.Hash, error) {
	candidates, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no such reference %q: %w", name, object.ErrNotFound)
	}
	if len(candidates) > 1 {
		return "", &object.AmbiguousError{Name: name, Candidates: candidates}
	}

	h := candidates[0]
	if want == "" {
		return h, nil
	}

	for hop := 0; hop < maxFollowHops; hop++ {
		obj, err := r.Store.Read(h)
		if err != nil {
			return "", err
		}
		if obj.Type == want {
			return h, nil
		}
		if !follow {
			return "", fmt.Errorf("reference %q is a %s, want %s: %w", name, obj.Type, want, object.ErrNoMatch)
		}

		switch {
		case obj.Type == object.TypeTag:
			h = obj.Tag.TargetHash()
		case obj.Type == object.TypeCommit && want == object.TypeTree:
			h = obj.Commit.TreeHash()
		default:
			return "", fmt.Errorf("reference %q is a %s, want %s: %w", name, obj.Type, want, object.ErrNoMatch)
		}
	}
	return "", &object.FormatError{Msg: fmt.Sprintf("reference %q: dereference chain exceeds %d hops", name, maxFollowHops)}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
