// Package realm locates and manages the directory tree that holds nodes.
// A realm is any directory containing the configured marker directory at
// its root.
package realm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ferrant/nous/internal/apperr"
)

// Realm is a validated realm root.
type Realm struct {
	root   string // canonical absolute path
	marker string
}

// Root returns the canonical absolute path of the realm root.
func (r *Realm) Root() string { return r.root }

// Find walks from start up through its ancestors looking for the marker
// directory. It returns apperr.ErrNotInRealm when no ancestor carries one.
func Find(start, marker string) (*Realm, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("realm: resolve start dir: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return &Realm{root: dir, marker: marker}, nil
		}
		if dir == filepath.Dir(dir) {
			return nil, apperr.ErrNotInRealm
		}
	}
}

// Init creates the marker directory under target, establishing a new realm.
// Initializing inside an existing realm is refused.
func Init(target, marker string) (*Realm, error) {
	if existing, err := Find(target, marker); err == nil {
		return nil, fmt.Errorf("realm: target already within realm %s: %w", existing.Root(), apperr.ErrExists)
	}
	markerDir := filepath.Join(target, marker)
	if err := os.MkdirAll(markerDir, 0o755); err != nil {
		return nil, fmt.Errorf("realm: create marker %s: %w", markerDir, err)
	}
	return Find(target, marker)
}

// NodeFile returns the default backing file for a new node: <root>/<name>.<ext>.
// Names that would escape the realm root or name no file at all are rejected.
func (r *Realm) NodeFile(name, ext string) (string, error) {
	filename := name + "." + ext
	cleaned := filepath.Clean(filename)
	if filepath.IsAbs(cleaned) || cleaned == "." {
		return "", fmt.Errorf("realm: invalid node name %q", name)
	}
	joined := filepath.Join(r.root, cleaned)
	if !strings.HasPrefix(joined, r.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("realm: node name escapes realm root: %q", name)
	}
	return joined, nil
}

// Touch creates the file at path if missing and bumps its modification
// time. The parent directory must already exist.
func (r *Realm) Touch(path string) error {
	parent := filepath.Dir(path)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return fmt.Errorf("realm: parent of %s is not a directory", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("realm: touch %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("realm: touch %s: %w", path, err)
	}
	now := time.Now()
	_ = os.Chtimes(path, now, now) // not a problem if this fails
	return nil
}

// Remove deletes the backing file at path.
func (r *Realm) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("realm: remove %s: %w", path, err)
	}
	return nil
}

// Rel rewrites path relative to the current working directory for display.
// When that is not possible the input is returned unchanged.
func Rel(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		return abs
	}
	if rel == "" {
		return "."
	}
	return rel
}

// Abs returns the canonical absolute form of path for display, falling back
// to the input when it cannot be resolved.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
