package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odvcencio/vcsync/pkg/object"
)

// writeObjectAs stores a framed, compressed object under an arbitrary
// hash, bypassing content addressing. Tests use it to fabricate prefix
// collisions and reference cycles that honest writes cannot produce.
func writeObjectAs(t *testing.T, r *Repo, name object.Hash, typ object.ObjectType, payload []byte) {
	t.Helper()
	compressed, err := object.StoreEncode(object.Frame(typ, payload))
	if err != nil {
		t.Fatalf("StoreEncode: %v", err)
	}
	dir := filepath.Join(r.VCDir, "objects", string(name[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, string(name[2:])), compressed, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveBlank(t *testing.T) {
	r := tempRepo(t)
	for _, name := range []string{"", "   ", "\t"} {
		got, err := r.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if len(got) != 0 {
			t.Errorf("Resolve(%q): got %v, want none", name, got)
		}
	}
}

func TestResolveFullHash(t *testing.T) {
	r := tempRepo(t)

	// A full 40-char hex name is accepted verbatim, lower-cased, without
	// consulting the store.
	got, err := r.Resolve("CE013625030BA8DBA906F756967F9E9CA394464A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []object.Hash{"ce013625030ba8dba906f756967f9e9ca394464a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAbbreviated(t *testing.T) {
	r := tempRepo(t)

	h, err := r.Store.Write(object.TypeBlob, []byte("abbrev me\n"), true)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := r.Resolve(string(h[:7]))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 || got[0] != h {
		t.Errorf("got %v, want [%s]", got, h)
	}

	// Shorter than 4 chars never matches.
	got, err = r.Resolve(string(h[:3]))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("3-char prefix: got %v, want none", got)
	}
}

func TestResolveNonHexName(t *testing.T) {
	r := tempRepo(t)
	got, err := r.Resolve("refs/heads/master")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestResolveHEAD(t *testing.T) {
	r := tempRepo(t)
	if err := r.CreateRef("refs/heads/master", testHash); err != nil {
		t.Fatal(err)
	}
	got, err := r.Resolve("HEAD")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 || got[0] != testHash {
		t.Errorf("got %v, want [%s]", got, testHash)
	}
}

func TestFindAmbiguous(t *testing.T) {
	r := tempRepo(t)

	// Two stored objects sharing a 6-char prefix, differing after it.
	h1 := object.Hash("abcdef1111111111111111111111111111111111")
	h2 := object.Hash("abcdef2222222222222222222222222222222222")
	writeObjectAs(t, r, h1, object.TypeBlob, []byte("one"))
	writeObjectAs(t, r, h2, object.TypeBlob, []byte("two"))

	_, err := r.Find("abcdef", "", false)
	if !errors.Is(err, object.ErrAmbiguous) {
		t.Fatalf("got %v, want AmbiguousError", err)
	}

	var ae *object.AmbiguousError
	if !errors.As(err, &ae) {
		t.Fatalf("error is not *AmbiguousError: %v", err)
	}
	if len(ae.Candidates) != 2 {
		t.Fatalf("candidates: got %v", ae.Candidates)
	}
	msg := err.Error()
	if !strings.Contains(msg, string(h1)) || !strings.Contains(msg, string(h2)) {
		t.Errorf("message does not enumerate candidates: %q", msg)
	}
}

func TestFindNoSuchReference(t *testing.T) {
	r := tempRepo(t)
	_, err := r.Find("deadbeef", "", false)
	if !errors.Is(err, object.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFindWithoutWantedType(t *testing.T) {
	r := tempRepo(t)
	h, err := r.Store.WriteBlob(&object.Blob{Data: []byte("plain\n")})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Find(string(h), "", false)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != h {
		t.Errorf("got %s, want %s", got, h)
	}
}

func TestFindTypeMismatchNoFollow(t *testing.T) {
	r := tempRepo(t)
	h, err := r.Store.WriteBlob(&object.Blob{Data: []byte("not a tree\n")})
	if err != nil {
		t.Fatal(err)
	}
	_, ferr := r.Find(string(h), object.TypeTree, false)
	if !errors.Is(ferr, object.ErrNoMatch) {
		t.Errorf("got %v, want ErrNoMatch", ferr)
	}
}

func TestFindTagDereferenceToTree(t *testing.T) {
	r := tempRepo(t)

	// tree <- commit <- tag: Find must cross both indirections.
	treeHash, err := r.Store.WriteTree(&object.Tree{})
	if err != nil {
		t.Fatal(err)
	}

	ckv := object.NewKVLM()
	ckv.Set([]byte("tree"), []byte(treeHash))
	ckv.Set([]byte("author"), []byte("A U Thor <a@example.com> 1527025023 +0200"))
	ckv.SetMessage([]byte("tip\n"))
	commitHash, err := r.Store.WriteCommit(&object.Commit{Fields: ckv})
	if err != nil {
		t.Fatal(err)
	}

	tkv := object.NewKVLM()
	tkv.Set([]byte("object"), []byte(commitHash))
	tkv.Set([]byte("type"), []byte("commit"))
	tkv.Set([]byte("tag"), []byte("v1"))
	tkv.SetMessage([]byte("release\n"))
	tagHash, err := r.Store.WriteTag(&object.Tag{Fields: tkv})
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Find(string(tagHash), object.TypeTree, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != treeHash {
		t.Errorf("got %s, want %s", got, treeHash)
	}

	// Same chain stopping at the commit.
	got, err = r.Find(string(tagHash), object.TypeCommit, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != commitHash {
		t.Errorf("got %s, want %s", got, commitHash)
	}
}

func TestFindDeadEndWithFollow(t *testing.T) {
	r := tempRepo(t)

	// A commit cannot be coerced to a blob even with follow.
	treeHash, err := r.Store.WriteTree(&object.Tree{})
	if err != nil {
		t.Fatal(err)
	}
	ckv := object.NewKVLM()
	ckv.Set([]byte("tree"), []byte(treeHash))
	ckv.SetMessage([]byte("m\n"))
	commitHash, err := r.Store.WriteCommit(&object.Commit{Fields: ckv})
	if err != nil {
		t.Fatal(err)
	}

	_, ferr := r.Find(string(commitHash), object.TypeBlob, true)
	if !errors.Is(ferr, object.ErrNoMatch) {
		t.Errorf("got %v, want ErrNoMatch", ferr)
	}
}

func TestFindDereferenceCycleBounded(t *testing.T) {
	r := tempRepo(t)

	// A forged tag whose object header points at itself. Content
	// addressing cannot produce this, but a corrupt repository can.
	self := object.Hash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	payload := []byte("object " + string(self) + "\ntype tag\ntag loop\n\nm\n")
	writeObjectAs(t, r, self, object.TypeTag, payload)

	_, err := r.Find(string(self), object.TypeTree, true)
	if err == nil {
		t.Fatal("Find should fail on a self-referential tag")
	}
	if !errors.Is(err, object.ErrFormat) || !strings.Contains(err.Error(), "hops") {
		t.Errorf("got %v, want hop bound FormatError", err)
	}
}
