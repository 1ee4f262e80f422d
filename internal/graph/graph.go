// Package graph answers forward-link and back-link queries over a realm.
// Every query re-scans the filesystem; no index is kept between calls.
package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ferrant/nous/internal/apperr"
	"github.com/ferrant/nous/internal/resolver"
	"github.com/ferrant/nous/internal/wikilink"
)

const (
	defaultWorkers    = 8
	defaultBufferSize = 64 * 1024
)

// Config tunes how a Graph scans the realm. Zero values fall back to
// defaults.
type Config struct {
	// Workers bounds the back-link fan-out pool.
	Workers int
	// BufferSize is the wikilink scanner's internal read buffer in bytes.
	BufferSize int
}

// ForwardLink is one outgoing reference from a node. Path is empty when the
// target has no backing file in the realm.
type ForwardLink struct {
	Target string `json:"target"`
	Path   string `json:"path,omitempty"`
}

// Resolved reports whether the target has a backing file.
func (f ForwardLink) Resolved() bool { return f.Path != "" }

// Links bundles both directions of a node's connections. Backlinks come
// first, forward links second, each computed independently; a node can
// appear in both.
type Links struct {
	Backlinks []string      `json:"backlinks"`
	Forward   []ForwardLink `json:"forward"`
}

// Graph composes the resolver and the wikilink scanner over one realm root.
type Graph struct {
	root    string
	res     *resolver.Resolver
	workers int
	bufSize int
	logger  *slog.Logger
}

// New creates a Graph for the realm rooted at root.
func New(root string, res *resolver.Resolver, cfg Config, logger *slog.Logger) *Graph {
	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = defaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Graph{root: root, res: res, workers: cfg.Workers, bufSize: cfg.BufferSize, logger: logger}
}

// ForwardLinks returns the unique targets referenced by the named node,
// each resolved non-strictly to a backing file where one exists. A name
// with no backing file yields an empty result, not an error.
func (g *Graph) ForwardLinks(ctx context.Context, name string) ([]ForwardLink, error) {
	src, err := g.res.ResolveOne(g.root, name, false)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("graph: open %s: %w", src, err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	var out []ForwardLink
	sc := wikilink.NewScannerSize(f, g.bufSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ln, err := sc.Next()
		if err == io.EOF {
			break
		}
		key := resolver.Fold(ln.Target)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		path, rerr := g.res.ResolveOne(g.root, ln.Target, false)
		if rerr != nil && !errors.Is(rerr, apperr.ErrNotFound) {
			return nil, rerr
		}
		out = append(out, ForwardLink{Target: ln.Target, Path: path})
	}
	return out, nil
}

// Backlinks returns the files under the realm whose content references the
// named node. The whole realm is scanned by a bounded worker pool, so
// result order is unspecified. Files that cannot be opened or read simply
// do not qualify.
func (g *Graph) Backlinks(ctx context.Context, name string) ([]string, error) {
	paths, err := g.res.Enumerate(g.root)
	if err != nil {
		return nil, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	var mu sync.Mutex
	var out []string
	for _, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := g.linksTo(path, name)
			if err != nil {
				g.logger.Debug("backlinks: skipping file",
					slog.String("path", path),
					slog.String("error", err.Error()))
				return nil
			}
			if ok {
				mu.Lock()
				out = append(out, path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Links returns backlinks and forward links for the named node, each
// computed independently and never merged.
func (g *Graph) Links(ctx context.Context, name string) (*Links, error) {
	back, err := g.Backlinks(ctx, name)
	if err != nil {
		return nil, err
	}
	fwd, err := g.ForwardLinks(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Links{Backlinks: back, Forward: fwd}, nil
}

// linksTo reports whether any occurrence in the file at path targets name.
func (g *Graph) linksTo(path, name string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sc := wikilink.NewScannerSize(f, g.bufSize)
	for {
		ln, err := sc.Next()
		if err == io.EOF {
			return false, nil
		}
		if resolver.EqualFold(ln.Target, name) {
			return true, nil
		}
	}
}
