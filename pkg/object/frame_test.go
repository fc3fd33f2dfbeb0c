package object

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameUnframeRoundTrip(t *testing.T) {
	payload := []byte("hello\n")
	raw := Frame(TypeBlob, payload)

	want := []byte("blob 6\x00hello\n")
	if !bytes.Equal(raw, want) {
		t.Fatalf("Frame: got %q, want %q", raw, want)
	}

	typ, got, err := Unframe(raw)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if typ != TypeBlob {
		t.Errorf("type: got %q, want %q", typ, TypeBlob)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload: got %q, want %q", got, payload)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	raw := Frame(TypeTree, nil)
	if !bytes.Equal(raw, []byte("tree 0\x00")) {
		t.Fatalf("Frame: got %q", raw)
	}
	typ, payload, err := Unframe(raw)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if typ != TypeTree || len(payload) != 0 {
		t.Errorf("got (%q, %q), want (tree, empty)", typ, payload)
	}
}

func TestUnframeForgedLength(t *testing.T) {
	// Header declares 10 bytes, payload has 6.
	_, _, err := Unframe([]byte("blob 10\x00hello\n"))
	if err == nil {
		t.Fatal("Unframe accepted forged length")
	}
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error is not a FormatError: %v", err)
	}
}

func TestUnframeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"no space", []byte("blob6\x00hello\n")},
		{"no NUL", []byte("blob 6hello")},
		{"non-decimal length", []byte("blob six\x00hello\n")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Unframe(tc.raw); !errors.Is(err, ErrFormat) {
				t.Errorf("got %v, want FormatError", err)
			}
		})
	}
}

func TestStoreEncodeDecodeInverse(t *testing.T) {
	raw := Frame(TypeBlob, []byte("some payload with\nmultiple lines\n"))
	compressed, err := StoreEncode(raw)
	if err != nil {
		t.Fatalf("StoreEncode: %v", err)
	}
	back, err := StoreDecode(compressed)
	if err != nil {
		t.Fatalf("StoreDecode: %v", err)
	}
	if !bytes.Equal(back, raw) {
		t.Errorf("round trip mismatch: got %q, want %q", back, raw)
	}
}

func TestStoreDecodeCorruptStream(t *testing.T) {
	_, err := StoreDecode([]byte("definitely not a zlib stream"))
	if err == nil {
		t.Fatal("StoreDecode accepted garbage")
	}
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error is not a FormatError: %v", err)
	}
}
