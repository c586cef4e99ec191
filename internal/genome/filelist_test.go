package genome

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileListSkipsBlankAndComments(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(listPath, []byte("a.fa\n\n# comment\nb.fa\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := ReadFileList(listPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0] != "a.fa" || files[1] != "b.fa" {
		t.Errorf("ReadFileList = %v, want [a.fa b.fa]", files)
	}
}

func TestReadFileListMissingFile(t *testing.T) {
	if _, err := ReadFileList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error reading a nonexistent list file")
	}
}

func TestResolveInputsFromArgs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	os.WriteFile(a, []byte(">x\nACGT\n"), 0o644)
	os.WriteFile(b, []byte(">y\nACGT\n"), 0o644)

	files, err := ResolveInputs([]string{a, b}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
}

func TestResolveInputsFromInfileList(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	os.WriteFile(a, []byte(">x\nACGT\n"), 0o644)
	listPath := filepath.Join(dir, "list.txt")
	os.WriteFile(listPath, []byte(a+"\n"), 0o644)

	files, err := ResolveInputs(nil, listPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != a {
		t.Errorf("ResolveInputs via infile-list = %v, want [%s]", files, a)
	}
}

func TestResolveInputsRejectsMissingFile(t *testing.T) {
	if _, err := ResolveInputs([]string{filepath.Join(t.TempDir(), "missing.fa")}, ""); err == nil {
		t.Fatal("expected an error for a nonexistent genome file")
	}
}

func TestResolveInputsAllowsStdinDash(t *testing.T) {
	files, err := ResolveInputs([]string{"-"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "-" {
		t.Errorf("ResolveInputs should pass '-' through unchecked, got %v", files)
	}
}

func TestResolveInputsRejectsEmpty(t *testing.T) {
	if _, err := ResolveInputs(nil, ""); err == nil {
		t.Fatal("expected an error when no input files are given")
	}
}
