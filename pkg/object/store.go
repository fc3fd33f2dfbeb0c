package object

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... On-disk contents are the
// zlib-compressed framed envelope.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given metadata directory. The
// objects/ subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) != HexHashLen {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write frames and hashes a payload and, when persist is set, compresses
// and stores it. Writes are idempotent (the same content always lands at
// the same path with the same bytes) and atomic: data goes to a temp file
// which is then renamed into place, so a concurrent reader sees either
// the whole object or nothing.
func (s *Store) Write(typ ObjectType, payload []byte, persist bool) (Hash, error) {
	raw := Frame(typ, payload)
	h := HashBytes(raw)
	if !persist {
		return h, nil
	}

	compressed, err := StoreEncode(raw)
	if err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}

	// MkdirAll treats a directory created by a concurrent writer as
	// success, which is the behavior two racing processes need.
	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// WriteObject serializes an object via its variant codec and writes it.
func (s *Store) WriteObject(o *Object, persist bool) (Hash, error) {
	payload, err := o.Marshal()
	if err != nil {
		return "", err
	}
	return s.Write(o.Type, payload, persist)
}

// ReadRaw retrieves an object by hash, returning its type and payload
// bytes. A missing file is ErrNotFound (a reader racing a writer should
// treat it as retryable); a bad frame or corrupt stream is a FormatError
// tagged with the hash.
func (s *Store) ReadRaw(h Hash) (ObjectType, []byte, error) {
	if len(h) != HexHashLen {
		return "", nil, &FormatError{Msg: fmt.Sprintf("invalid object name %q", h)}
	}
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("object %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := StoreDecode(compressed)
	if err != nil {
		return "", nil, withHash(err, h)
	}
	typ, payload, err := Unframe(raw)
	if err != nil {
		return "", nil, withHash(err, h)
	}
	return typ, payload, nil
}

// Read retrieves and decodes an object by hash, dispatching to the
// variant deserializer for its type.
func (s *Store) Read(h Hash) (*Object, error) {
	typ, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Unmarshal(typ, payload)
	if err != nil {
		return nil, withHash(err, h)
	}
	return obj, nil
}

// ListPrefix enumerates the full hashes of stored objects whose names
// start with prefix+rest, where prefix is the two-hex-char fan-out
// directory. It exists for abbreviated-name resolution, not as a general
// query API; a missing fan-out directory yields no candidates.
func (s *Store) ListPrefix(prefix, rest string) ([]Hash, error) {
	dir := filepath.Join(s.root, "objects", prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list objects %s: %w", prefix, err)
	}

	var candidates []Hash
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			// Skip in-flight temp files.
			continue
		}
		if strings.HasPrefix(name, rest) {
			candidates = append(candidates, Hash(prefix+name))
		}
	}
	return candidates, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b), true)
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	typ, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	if typ != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q: %w", h, typ, TypeBlob, ErrNoMatch)
	}
	return UnmarshalBlob(payload)
}

// WriteTree serializes and stores a Tree.
func (s *Store) WriteTree(tr *Tree) (Hash, error) {
	payload, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, payload, true)
}

// ReadTree reads and deserializes a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	typ, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	if typ != TypeTree {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q: %w", h, typ, TypeTree, ErrNoMatch)
	}
	tr, err := UnmarshalTree(payload)
	if err != nil {
		return nil, withHash(err, h)
	}
	return tr, nil
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c), true)
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	typ, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	if typ != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q: %w", h, typ, TypeCommit, ErrNoMatch)
	}
	c, err := UnmarshalCommit(payload)
	if err != nil {
		return nil, withHash(err, h)
	}
	return c, nil
}

// WriteTag serializes and stores a Tag.
func (s *Store) WriteTag(t *Tag) (Hash, error) {
	return s.Write(TypeTag, MarshalTag(t), true)
}

// ReadTag reads and deserializes a Tag.
func (s *Store) ReadTag(h Hash) (*Tag, error) {
	typ, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	if typ != TypeTag {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q: %w", h, typ, TypeTag, ErrNoMatch)
	}
	t, err := UnmarshalTag(payload)
	if err != nil {
		return nil, withHash(err, h)
	}
	return t, nil
}
