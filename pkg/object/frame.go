package object

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

// Frame wraps a payload in the storage envelope "type len\0content".
func Frame(typ ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", typ, len(payload))
	raw := make([]byte, 0, len(header)+len(payload))
	raw = append(raw, header...)
	raw = append(raw, payload...)
	return raw
}

// Unframe splits a framed envelope back into type and payload. The
// declared length must equal the actual payload length; a mismatch is
// corruption and fails with a FormatError.
func Unframe(raw []byte) (ObjectType, []byte, error) {
	sp := bytes.IndexByte(raw, ' ')
	if sp < 0 {
		return "", nil, formatErrf("invalid frame: no space after type")
	}
	typ := ObjectType(raw[:sp])

	nul := bytes.IndexByte(raw[sp:], 0)
	if nul < 0 {
		return "", nil, formatErrf("invalid frame: no NUL after length")
	}
	nul += sp

	size, err := strconv.ParseUint(string(raw[sp+1:nul]), 10, 64)
	if err != nil {
		return "", nil, formatErrf("invalid frame: bad length %q", raw[sp+1:nul])
	}
	payload := raw[nul+1:]
	if uint64(len(payload)) != size {
		return "", nil, formatErrf("bad length: header=%d, actual=%d", size, len(payload))
	}
	return typ, payload, nil
}

// StoreEncode compresses a framed envelope for at-rest storage.
func StoreEncode(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compress object: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress object: %w", err)
	}
	return buf.Bytes(), nil
}

// StoreDecode is the exact inverse of StoreEncode. A corrupt stream is a
// FormatError, fatal for the single read in progress.
func StoreDecode(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Msg: "corrupt compressed stream", Err: err}
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, &FormatError{Msg: "corrupt compressed stream", Err: err}
	}
	return raw, nil
}
