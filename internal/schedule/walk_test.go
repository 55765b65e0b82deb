package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestListTimetableFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.xlsx"))
	touch(t, filepath.Join(dir, "a.PDF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.xlsx"))

	paths, err := ListTimetableFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %v", paths)
	}
	// os.ReadDir sorts by name; the pdf with uppercase extension qualifies.
	if filepath.Base(paths[0]) != "a.PDF" || filepath.Base(paths[1]) != "b.xlsx" {
		t.Errorf("unexpected order or selection: %v", paths)
	}
}

func TestListTimetableFiles_MissingDirIsFatal(t *testing.T) {
	if _, err := ListTimetableFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestLoaderExtensions(t *testing.T) {
	exts := LoaderExtensions()
	want := map[string]bool{".pdf": false, ".xlsx": false}
	for _, e := range exts {
		if _, ok := want[e]; ok {
			want[e] = true
		}
	}
	for e, seen := range want {
		if !seen {
			t.Errorf("expected %s loader to be registered", e)
		}
	}
}
