// Package noteservice exposes realm queries to the API and MCP layers.
// Every answer is derived freshly from the filesystem; nothing is cached
// between calls.
package noteservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferrant/nous/internal/apperr"
	"github.com/ferrant/nous/internal/graph"
	"github.com/ferrant/nous/internal/realm"
	"github.com/ferrant/nous/internal/resolver"
)

// NodeListItem is a lightweight entry in a node listing.
type NodeListItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// NodeDetail is the full representation of a node.
type NodeDetail struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Content string       `json:"content"`
	Links   *graph.Links `json:"links"`
}

// Service coordinates realm, resolver, and graph queries.
type Service struct {
	realm *realm.Realm
	res   *resolver.Resolver
	graph *graph.Graph
}

// NewService creates a new node service over an already-located realm.
func NewService(r *realm.Realm, res *resolver.Resolver, g *graph.Graph) *Service {
	return &Service{realm: r, res: res, graph: g}
}

// ListNodes enumerates every node in the realm in traversal order.
func (s *Service) ListNodes(_ context.Context) ([]NodeListItem, error) {
	paths, err := s.res.Enumerate(s.realm.Root())
	if err != nil {
		return nil, err
	}
	items := make([]NodeListItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, NodeListItem{
			Name: resolver.Stem(p),
			Path: s.relPath(p),
		})
	}
	return items, nil
}

// NodePath resolves a node name to its backing file, non-strictly.
func (s *Service) NodePath(_ context.Context, name string) (string, error) {
	path, err := s.res.ResolveOne(s.realm.Root(), name, false)
	if err != nil {
		return "", err
	}
	return s.relPath(path), nil
}

// GetNode returns a node's content together with both link directions.
func (s *Service) GetNode(ctx context.Context, name string) (*NodeDetail, error) {
	path, err := s.res.ResolveOne(s.realm.Root(), name, false)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("noteservice: %q: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("noteservice: read %s: %w", path, err)
	}
	links, err := s.Links(ctx, name)
	if err != nil {
		return nil, err
	}
	return &NodeDetail{
		Name:    resolver.Stem(path),
		Path:    s.relPath(path),
		Content: string(data),
		Links:   links,
	}, nil
}

// ForwardLinks returns the node's outgoing references, with resolved paths
// rewritten relative to the realm root.
func (s *Service) ForwardLinks(ctx context.Context, name string) ([]graph.ForwardLink, error) {
	fwd, err := s.graph.ForwardLinks(ctx, name)
	if err != nil {
		return nil, err
	}
	for i, f := range fwd {
		if f.Path != "" {
			fwd[i].Path = s.relPath(f.Path)
		}
	}
	if fwd == nil {
		fwd = []graph.ForwardLink{}
	}
	return fwd, nil
}

// Backlinks returns the realm-relative paths of the files referencing the
// node.
func (s *Service) Backlinks(ctx context.Context, name string) ([]string, error) {
	back, err := s.graph.Backlinks(ctx, name)
	if err != nil {
		return nil, err
	}
	for i, p := range back {
		back[i] = s.relPath(p)
	}
	if back == nil {
		back = []string{}
	}
	return back, nil
}

// Links returns backlinks and forward links for a node, with all paths
// rewritten relative to the realm root.
func (s *Service) Links(ctx context.Context, name string) (*graph.Links, error) {
	back, err := s.Backlinks(ctx, name)
	if err != nil {
		return nil, err
	}
	fwd, err := s.ForwardLinks(ctx, name)
	if err != nil {
		return nil, err
	}
	return &graph.Links{Backlinks: back, Forward: fwd}, nil
}

// AbsPath rewrites a realm-relative display path back to an absolute path.
// Absolute inputs (symlinked nodes outside the root) pass through.
func (s *Service) AbsPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.realm.Root(), filepath.FromSlash(rel))
}

// relPath rewrites an absolute realm path relative to the realm root for
// presentation. Paths outside the root (symlinked nodes) stay absolute.
func (s *Service) relPath(path string) string {
	rel, err := filepath.Rel(s.realm.Root(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
