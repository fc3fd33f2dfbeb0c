package object

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a Tree in stored entry order.
func MarshalTree(tr *Tree) ([]byte, error) {
	return tr.Marshal()
}

// UnmarshalTree parses a Tree from its binary payload.
func UnmarshalTree(data []byte) (*Tree, error) {
	return ParseTree(data)
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit payload.
func MarshalCommit(c *Commit) []byte {
	return c.Fields.Marshal()
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	kv, err := ParseKVLM(data)
	if err != nil {
		return nil, err
	}
	return &Commit{Fields: kv}, nil
}

// TreeHash returns the hash in the commit's "tree" header.
func (c *Commit) TreeHash() Hash {
	return Hash(c.Fields.Get("tree"))
}

// Parents returns the hashes of the commit's "parent" headers in order.
func (c *Commit) Parents() []Hash {
	vals := c.Fields.Values("parent")
	parents := make([]Hash, len(vals))
	for i, v := range vals {
		parents[i] = Hash(v)
	}
	return parents
}

// ---------------------------------------------------------------------------
// Tag
// ---------------------------------------------------------------------------

// MarshalTag serializes a Tag payload.
func MarshalTag(t *Tag) []byte {
	return t.Fields.Marshal()
}

// UnmarshalTag parses a Tag from its serialized form.
func UnmarshalTag(data []byte) (*Tag, error) {
	kv, err := ParseKVLM(data)
	if err != nil {
		return nil, err
	}
	return &Tag{Fields: kv}, nil
}

// TargetHash returns the hash in the tag's "object" header.
func (t *Tag) TargetHash() Hash {
	return Hash(t.Fields.Get("object"))
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

// Object is the decoded form of a stored object: exactly one of the four
// variants is set, matching Type.
type Object struct {
	Type   ObjectType
	Blob   *Blob
	Tree   *Tree
	Commit *Commit
	Tag    *Tag
}

// Unmarshal decodes a payload according to its type token. The type set
// is closed; an unrecognized token is a FormatError (the store tags it
// with the hash being read).
func Unmarshal(typ ObjectType, data []byte) (*Object, error) {
	switch typ {
	case TypeBlob:
		b, err := UnmarshalBlob(data)
		if err != nil {
			return nil, err
		}
		return &Object{Type: TypeBlob, Blob: b}, nil
	case TypeTree:
		tr, err := UnmarshalTree(data)
		if err != nil {
			return nil, err
		}
		return &Object{Type: TypeTree, Tree: tr}, nil
	case TypeCommit:
		c, err := UnmarshalCommit(data)
		if err != nil {
			return nil, err
		}
		return &Object{Type: TypeCommit, Commit: c}, nil
	case TypeTag:
		t, err := UnmarshalTag(data)
		if err != nil {
			return nil, err
		}
		return &Object{Type: TypeTag, Tag: t}, nil
	default:
		return nil, formatErrf("unknown object type %q", typ)
	}
}

// Marshal produces the canonical payload bytes for the object, the exact
// inverse of Unmarshal.
func (o *Object) Marshal() ([]byte, error) {
	switch o.Type {
	case TypeBlob:
		return MarshalBlob(o.Blob), nil
	case TypeTree:
		return MarshalTree(o.Tree)
	case TypeCommit:
		return MarshalCommit(o.Commit), nil
	case TypeTag:
		return MarshalTag(o.Tag), nil
	default:
		return nil, formatErrf("unknown object type %q", o.Type)
	}
}
