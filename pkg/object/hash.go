package object

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the framed envelope
// "type len\0content". Equal type and payload always hash equal, which is
// what makes writes content-addressed and idempotent.
func HashObject(typ ObjectType, payload []byte) Hash {
	return HashBytes(Frame(typ, payload))
}
