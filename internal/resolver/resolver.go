// Package resolver enumerates node files under a realm root and resolves
// case-insensitive node names to their backing files.
package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ferrant/nous/internal/apperr"
)

// Config carries the traversal policy. There are no package-level defaults:
// the caller decides which extensions count as nodes and which entries are
// hidden.
type Config struct {
	// Extensions is the set of recognized node file extensions, without the
	// leading dot. Matching is ASCII case-insensitive.
	Extensions []string
	// HiddenPrefix prunes any directory entry whose name starts with it.
	HiddenPrefix string
}

// Resolver answers node lookups against a realm directory tree. Every call
// re-walks the filesystem; no state is kept between queries.
type Resolver struct {
	exts   map[string]struct{}
	hidden string
	logger *slog.Logger
}

// New creates a Resolver with the given traversal policy.
func New(cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	exts := make(map[string]struct{}, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[Fold(e)] = struct{}{}
	}
	return &Resolver{exts: exts, hidden: cfg.HiddenPrefix, logger: logger}
}

// errStop aborts a walk early without reporting failure.
var errStop = errors.New("resolver: stop walk")

// Walk calls fn for every recognized node file under root. Symlinks are
// followed; directories already seen through another path are skipped so
// link cycles terminate. Entries within a directory are visited in
// lexicographic order, which makes traversal order reproducible across
// filesystems.
//
// Unreadable subdirectories and broken symlinks are skipped, not fatal.
// Only an unusable root is an error.
func (r *Resolver) Walk(root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("resolver: stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resolver: root is not a directory: %s", root)
	}
	visited := make(map[string]struct{})
	if err := r.walkDir(root, visited, fn); err != nil && !errors.Is(err, errStop) {
		return err
	}
	return nil
}

func (r *Resolver) walkDir(dir string, visited map[string]struct{}, fn func(path string) error) error {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if _, seen := visited[real]; seen {
			return nil
		}
		visited[real] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Debug("walk: skipping unreadable dir", slog.String("dir", dir), slog.String("error", err.Error()))
		return nil
	}
	// os.ReadDir returns entries sorted by name.
	for _, entry := range entries {
		name := entry.Name()
		if r.hidden != "" && strings.HasPrefix(name, r.hidden) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path) // follows symlinks
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := r.walkDir(path, visited, fn); err != nil {
				return err
			}
			continue
		}
		if !r.Recognized(name) {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

// Enumerate returns every recognized node file under root in traversal order.
func (r *Resolver) Enumerate(root string) ([]string, error) {
	var out []string
	err := r.Walk(root, func(path string) error {
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve returns every backing file under root whose filename stem equals
// name, ASCII case-insensitively, in traversal order. Zero, one, and many
// matches are all ordinary outcomes.
func (r *Resolver) Resolve(root, name string) ([]string, error) {
	var out []string
	err := r.Walk(root, func(path string) error {
		if EqualFold(Stem(path), name) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveOne resolves name to a single backing file. With no match it
// returns apperr.ErrNotFound. With several matches it returns
// apperr.ErrAmbiguous under strict mode; otherwise it warns and returns the
// first match in traversal order.
func (r *Resolver) ResolveOne(root, name string, strict bool) (string, error) {
	var matches []string
	err := r.Walk(root, func(path string) error {
		if EqualFold(Stem(path), name) {
			matches = append(matches, path)
			if len(matches) > 1 {
				return errStop
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	switch {
	case len(matches) == 0:
		return "", fmt.Errorf("resolver: %q: %w", name, apperr.ErrNotFound)
	case len(matches) > 1:
		if strict {
			return "", fmt.Errorf("resolver: %q: %w", name, apperr.ErrAmbiguous)
		}
		r.logger.Warn("multiple files found for node, using first",
			slog.String("node", name),
			slog.String("path", matches[0]))
	}
	return matches[0], nil
}

// Recognized reports whether filename carries one of the configured node
// extensions.
func (r *Resolver) Recognized(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	_, ok := r.exts[Fold(ext[1:])]
	return ok
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EqualFold reports whether a and b are equal under ASCII case folding.
// Unlike strings.EqualFold it never folds non-ASCII letters.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}

// Fold lowercases the ASCII letters of s, leaving all other bytes alone.
func Fold(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		sb.WriteByte(foldByte(s[i]))
	}
	return sb.String()
}

func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
