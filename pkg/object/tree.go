package object

import (
	"bytes"
	"encoding/hex"
	"sort"
)

// parseTreeEntry parses a single entry starting at offset pos:
// "mode SP path NUL digest[20]". It returns the entry and the offset of
// the next one.
func parseTreeEntry(raw []byte, pos int) (TreeEntry, int, error) {
	sp := indexFrom(raw, ' ', pos)
	if sp < 0 {
		return TreeEntry{}, 0, formatErrf("tree: truncated entry at offset %d", pos)
	}
	if n := sp - pos; n != 5 && n != 6 {
		return TreeEntry{}, 0, formatErrf("tree: malformed mode %q at offset %d", raw[pos:sp], pos)
	}
	mode := raw[pos:sp]
	for _, c := range mode {
		if c < '0' || c > '9' {
			return TreeEntry{}, 0, formatErrf("tree: malformed mode %q at offset %d", mode, pos)
		}
	}

	nul := indexFrom(raw, 0, sp)
	if nul < 0 {
		return TreeEntry{}, 0, formatErrf("tree: unterminated path at offset %d", sp+1)
	}
	path := raw[sp+1 : nul]

	if nul+1+RawHashLen > len(raw) {
		return TreeEntry{}, 0, formatErrf("tree: truncated hash for path %q", path)
	}
	digest := raw[nul+1 : nul+1+RawHashLen]

	entry := TreeEntry{
		Mode: string(mode),
		Path: append([]byte(nil), path...),
		Hash: Hash(hex.EncodeToString(digest)),
	}
	return entry, nul + 1 + RawHashLen, nil
}

// ParseTree parses a full tree payload as a sequence of entries. Any
// trailing partial entry fails the whole parse.
func ParseTree(raw []byte) (*Tree, error) {
	tr := &Tree{}
	pos := 0
	for pos < len(raw) {
		entry, next, err := parseTreeEntry(raw, pos)
		if err != nil {
			return nil, err
		}
		tr.Entries = append(tr.Entries, entry)
		pos = next
	}
	return tr, nil
}

// Marshal serializes the tree in stored entry order:
// "mode SP path NUL digest[20]" per entry, concatenated.
func (tr *Tree) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		digest, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(digest) != RawHashLen {
			return nil, formatErrf("tree: invalid entry hash %q for path %q", e.Hash, e.Path)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.Write(e.Path)
		buf.WriteByte(0)
		buf.Write(digest)
	}
	return buf.Bytes(), nil
}

// SortEntries orders entries by raw path bytes with a conceptual trailing
// '/' on directory entries, the canonical git ordering. Serialization
// never applies it implicitly; callers building trees in memory opt in
// when they want hashes compatible with the wider ecosystem.
func SortEntries(entries []TreeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return bytes.Compare(sortKey(entries[i]), sortKey(entries[j])) < 0
	})
}

func sortKey(e TreeEntry) []byte {
	if e.IsDir() {
		return append(append([]byte(nil), e.Path...), '/')
	}
	return e.Path
}
