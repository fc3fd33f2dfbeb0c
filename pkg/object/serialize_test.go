package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestObjectRoundTripAllVariants(t *testing.T) {
	treePayload := treeEntryBytes(t, "100644", "f", "ce013625030ba8dba906f756967f9e9ca394464a")

	cases := []struct {
		name    string
		typ     ObjectType
		payload []byte
	}{
		{"blob", TypeBlob, []byte("arbitrary\x00binary\xffbytes")},
		{"tree", TypeTree, treePayload},
		{"commit", TypeCommit, commitPayload},
		{"tag", TypeTag, []byte("object ce013625030ba8dba906f756967f9e9ca394464a\ntype blob\ntag v1\n\nmsg\n")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Unmarshal(tc.typ, tc.payload)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			out, err := obj.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Equal(out, tc.payload) {
				t.Errorf("round trip not byte-identical:\ngot  %q\nwant %q", out, tc.payload)
			}

			// Field-wise equality through a second decode.
			again, err := Unmarshal(tc.typ, out)
			if err != nil {
				t.Fatalf("second Unmarshal: %v", err)
			}
			opts := cmp.Options{
				cmp.AllowUnexported(KVLM{}, kvlmEntry{}),
				cmpopts.EquateEmpty(),
			}
			if diff := cmp.Diff(obj, again, opts); diff != "" {
				t.Errorf("objects differ (-first +second):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	if _, err := Unmarshal(ObjectType("widget"), []byte("x")); !errors.Is(err, ErrFormat) {
		t.Errorf("got %v, want FormatError", err)
	}
}

func TestTagTargetHash(t *testing.T) {
	tag, err := UnmarshalTag([]byte("object ab1afef80fac8e34258ff41fc1b867c702daa24b\ntype commit\ntag v1\n\nm\n"))
	if err != nil {
		t.Fatalf("UnmarshalTag: %v", err)
	}
	if got := tag.TargetHash(); got != "ab1afef80fac8e34258ff41fc1b867c702daa24b" {
		t.Errorf("TargetHash: got %s", got)
	}
}
