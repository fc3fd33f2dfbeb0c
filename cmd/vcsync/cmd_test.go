package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

// inDir runs the test body with dir as the working directory.
func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%s): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("Chdir(%s): %v", wd, err)
		}
	})
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s: %v\noutput: %s", cmd.Use, err, out.String())
	}
	return out.String()
}

func TestInitHashObjectCatFile(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)

	out := runCmd(t, newInitCmd(), ".")
	if !strings.Contains(out, "initialized empty vcsync repository") {
		t.Fatalf("init output: %q", out)
	}

	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Without -w the hash is computed but nothing is stored.
	out = runCmd(t, newHashObjectCmd(), "hello.txt")
	hash := strings.TrimSpace(out)
	if hash != "ce013625030ba8dba906f756967f9e9ca394464a" {
		t.Fatalf("hash-object: got %q", hash)
	}
	r, err := repo.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.Store.Has("ce013625030ba8dba906f756967f9e9ca394464a") {
		t.Fatal("hash-object without -w stored the object")
	}

	out = runCmd(t, newHashObjectCmd(), "-w", "hello.txt")
	if strings.TrimSpace(out) != hash {
		t.Fatalf("hash-object -w: got %q", out)
	}

	out = runCmd(t, newCatFileCmd(), "blob", hash)
	if out != "hello\n" {
		t.Fatalf("cat-file: got %q", out)
	}

	// Abbreviated name works too.
	out = runCmd(t, newCatFileCmd(), "blob", hash[:8])
	if out != "hello\n" {
		t.Fatalf("cat-file abbreviated: got %q", out)
	}
}

func TestTagAndShowRef(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)
	runCmd(t, newInitCmd(), ".")

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("data\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	hash := strings.TrimSpace(runCmd(t, newHashObjectCmd(), "-w", "f"))

	runCmd(t, newTagCmd(), "v1", hash)

	out := runCmd(t, newTagCmd())
	if strings.TrimSpace(out) != "v1" {
		t.Fatalf("tag list: got %q", out)
	}

	out = runCmd(t, newShowRefCmd())
	if !strings.Contains(out, hash+" refs/tags/v1") {
		t.Fatalf("show-ref: got %q", out)
	}

	out = runCmd(t, newRevParseCmd(), hash[:6])
	if strings.TrimSpace(out) != hash {
		t.Fatalf("rev-parse: got %q", out)
	}
}
