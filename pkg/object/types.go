package object

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

// RawHashLen is the length of a raw (binary) digest.
const RawHashLen = 20

// HexHashLen is the length of a hex-encoded Hash.
const HexHashLen = 40

const (
	// Tree mode constants matching Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object: a mode string of 5 or 6 ASCII
// digits, a path containing no NUL or '/', and the hash of the referenced
// object.
type TreeEntry struct {
	Mode string
	Path []byte
	Hash Hash
}

// Tree holds a list of tree entries in stored order. Order survives a
// parse/serialize round trip untouched; SortEntries exists for callers
// that want canonical ordering.
type Tree struct {
	Entries []TreeEntry
}

// Commit is a commit object: ordered headers (tree, parent, author,
// committer, gpgsig, ...) plus the free-text message.
type Commit struct {
	Fields *KVLM
}

// Tag is an annotated tag object. Same payload format as Commit, with
// object/type/tag/tagger headers.
type Tag struct {
	Fields *KVLM
}

// IsDir reports whether the entry's mode names a directory.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir || e.Mode == "040000"
}
