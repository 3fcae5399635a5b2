package storage

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestSaveAndReadFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "posts", "nested", "post.json")

	if err := s.SaveFile(path, []byte(`{"title":"Test"}`)); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != `{"title":"Test"}` {
		t.Errorf("ReadFile() = %q", got)
	}
}

func TestReadFile_Missing(t *testing.T) {
	s := &Storage{}
	_, err := s.ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}
}
