package object

import (
	"bytes"
)

// KVLM is the key-value-list-with-message payload used by commit and tag
// objects: an ordered mapping from header key to one or more values, plus
// a trailing free-text message.
//
// A key's values are always a non-empty slice; a repeated key appends to
// the slice at the key's first-occurrence position. Insertion order of
// first-seen keys is preserved on serialization, which is what makes
// Marshal(ParseKVLM(x)) == x hold byte for byte.
type KVLM struct {
	entries []kvlmEntry
	message []byte
}

type kvlmEntry struct {
	key    []byte
	values [][]byte
}

// NewKVLM returns an empty record.
func NewKVLM() *KVLM {
	return &KVLM{}
}

// ParseKVLM parses a commit/tag payload.
//
// Each header line is "key SP value NL"; a value continues across lines
// when the next line starts with a space, and the leading space of each
// continuation line is stripped. Headers end at a blank line; everything
// after it is the message.
//
// The recursion of the reference grammar is expressed as a loop with an
// explicit offset so pathological inputs cannot grow the call stack.
func ParseKVLM(raw []byte) (*KVLM, error) {
	kv := NewKVLM()
	start := 0
	for {
		spc := indexFrom(raw, ' ', start)
		nl := indexFrom(raw, '\n', start)

		// Base case: no key token before the next newline. The blank
		// line separating headers from the message must sit exactly at
		// the current offset.
		if spc < 0 || (nl >= 0 && nl < spc) {
			if nl != start {
				return nil, formatErrf("kvlm: message delimiter malformed at offset %d", start)
			}
			kv.message = append([]byte(nil), raw[start+1:]...)
			return kv, nil
		}

		key := raw[start:spc]

		// The value ends at the first newline not followed by a space.
		end := spc
		for {
			end = indexFrom(raw, '\n', end+1)
			if end < 0 {
				return nil, formatErrf("kvlm: unterminated value for key %q", key)
			}
			if end+1 >= len(raw) || raw[end+1] != ' ' {
				break
			}
		}

		value := bytes.ReplaceAll(raw[spc+1:end], []byte("\n "), []byte("\n"))
		kv.Add(key, value)
		start = end + 1
	}
}

func indexFrom(b []byte, c byte, from int) int {
	if from >= len(b) {
		return -1
	}
	i := bytes.IndexByte(b[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}

// Marshal serializes the record back to payload bytes: headers in
// first-insertion order with embedded newlines re-expanded to
// continuation lines, a blank line, then the raw message.
func (kv *KVLM) Marshal() []byte {
	var buf bytes.Buffer
	for _, e := range kv.entries {
		for _, v := range e.values {
			buf.Write(e.key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll(v, []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.Write(kv.message)
	return buf.Bytes()
}

// Get returns the first value recorded for key, or nil if absent.
func (kv *KVLM) Get(key string) []byte {
	for _, e := range kv.entries {
		if string(e.key) == key {
			return e.values[0]
		}
	}
	return nil
}

// Values returns all values recorded for key in order, or nil if absent.
func (kv *KVLM) Values(key string) [][]byte {
	for _, e := range kv.entries {
		if string(e.key) == key {
			return e.values
		}
	}
	return nil
}

// Has reports whether key is present.
func (kv *KVLM) Has(key string) bool {
	return kv.Values(key) != nil
}

// Add appends a value for key, promoting an existing scalar entry to a
// list in place. A new key keeps its insertion position.
func (kv *KVLM) Add(key, value []byte) {
	for i := range kv.entries {
		if bytes.Equal(kv.entries[i].key, key) {
			kv.entries[i].values = append(kv.entries[i].values, value)
			return
		}
	}
	kv.entries = append(kv.entries, kvlmEntry{
		key:    append([]byte(nil), key...),
		values: [][]byte{value},
	})
}

// Set replaces all values for key with a single value, inserting the key
// at the end if it was absent.
func (kv *KVLM) Set(key, value []byte) {
	for i := range kv.entries {
		if bytes.Equal(kv.entries[i].key, key) {
			kv.entries[i].values = [][]byte{value}
			return
		}
	}
	kv.entries = append(kv.entries, kvlmEntry{
		key:    append([]byte(nil), key...),
		values: [][]byte{value},
	})
}

// Keys returns the header keys in first-insertion order.
func (kv *KVLM) Keys() []string {
	keys := make([]string, len(kv.entries))
	for i, e := range kv.entries {
		keys[i] = string(e.key)
	}
	return keys
}

// Message returns the free-text message bytes.
func (kv *KVLM) Message() []byte {
	return kv.message
}

// SetMessage replaces the message bytes.
func (kv *KVLM) SetMessage(msg []byte) {
	kv.message = append([]byte(nil), msg...)
}
