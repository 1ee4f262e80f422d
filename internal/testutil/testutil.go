// Package testutil provides shared test helpers for setting up realms.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrant/nous/internal/graph"
	"github.com/ferrant/nous/internal/noteservice"
	"github.com/ferrant/nous/internal/realm"
	"github.com/ferrant/nous/internal/resolver"
)

// Marker is the realm marker used by all fixtures.
const Marker = ".nous"

// QuietLogger returns a logger that only surfaces errors.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestRealm creates a temporary initialized realm and returns its root.
func TestRealm(t *testing.T) (string, *realm.Realm) {
	t.Helper()
	dir := t.TempDir()
	r, err := realm.Init(dir, Marker)
	if err != nil {
		t.Fatal(err)
	}
	return r.Root(), r
}

// TestResolver returns a resolver with the default extension policy.
func TestResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	return resolver.New(resolver.Config{
		Extensions:   []string{"md", "markdown", "org", "txt", "text"},
		HiddenPrefix: ".",
	}, QuietLogger())
}

// TestService builds the full read-only service stack over a fresh realm.
func TestService(t *testing.T) (string, *noteservice.Service) {
	t.Helper()
	root, r := TestRealm(t)
	res := TestResolver(t)
	g := graph.New(root, res, graph.Config{Workers: 4}, QuietLogger())
	return root, noteservice.NewService(r, res, g)
}

// WriteNode writes a node file under root, creating parent directories.
func WriteNode(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
