package realm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrant/nous/internal/apperr"
)

const marker = ".nous"

func TestInitAndFind(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, marker)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	info, err := os.Stat(filepath.Join(r.Root(), marker))
	if err != nil || !info.IsDir() {
		t.Fatalf("marker dir missing: %v", err)
	}

	// Find from a nested directory reaches the same root.
	nested := filepath.Join(r.Root(), "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	found, err := Find(nested, marker)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Root() != r.Root() {
		t.Errorf("root = %q, want %q", found.Root(), r.Root())
	}
}

func TestFind_NotInRealm(t *testing.T) {
	_, err := Find(t.TempDir(), marker)
	if !errors.Is(err, apperr.ErrNotInRealm) {
		t.Fatalf("err = %v, want ErrNotInRealm", err)
	}
}

func TestInit_RefusesNestedRealm(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, marker); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(sub, marker); !errors.Is(err, apperr.ErrExists) {
		t.Fatalf("nested init err = %v, want ErrExists", err)
	}
}

func TestNodeFile(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, marker)
	if err != nil {
		t.Fatal(err)
	}

	path, err := r.NodeFile("idea", "md")
	if err != nil {
		t.Fatalf("NodeFile: %v", err)
	}
	if path != filepath.Join(r.Root(), "idea.md") {
		t.Errorf("path = %q", path)
	}

	for _, bad := range []string{"../escape", "/abs"} {
		if _, err := r.NodeFile(bad, "md"); err == nil {
			t.Errorf("NodeFile(%q) should fail", bad)
		}
	}
}

func TestTouchAndRemove(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, marker)
	if err != nil {
		t.Fatal(err)
	}
	path, err := r.NodeFile("scratch", "md")
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Touch(path); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	// Touching an existing file keeps its content.
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Touch(path); err != nil {
		t.Fatalf("second Touch: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("content = %q, want keep", data)
	}

	if err := r.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("file should be gone")
	}
}

func TestTouch_MissingParent(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, marker)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Touch(filepath.Join(r.Root(), "nodir", "x.md")); err == nil {
		t.Fatal("touch into missing directory should fail")
	}
}
