// Package watch emits realm change notifications from filesystem events.
// It maintains no state about node content: consumers re-scan on demand.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called for every node file change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind, path string)

// Recognizer decides which filenames count as node files.
type Recognizer interface {
	Recognized(filename string) bool
}

// Watch starts an fsnotify watcher on the realm root and reports node file
// changes until ctx is cancelled. Directories created at runtime are added
// to the watch list; entries under the hidden prefix are ignored. A rename
// is reported as a deletion of the old path — the new path arrives as its
// own create event when it lands inside the realm.
func Watch(ctx context.Context, root string, rec Recognizer, hiddenPrefix string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root, hiddenPrefix); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name
			name := filepath.Base(absPath)
			if hiddenPrefix != "" && strings.HasPrefix(name, hiddenPrefix) {
				continue
			}

			// New directories join the watch list; any node files already
			// inside them are reported as created.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath, hiddenPrefix); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					reportNewDir(root, absPath, rec, hiddenPrefix, logger, cb)
					continue
				}
			}

			if !rec.Recognized(name) {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				logger.Debug("watcher: node created", slog.String("path", rel))
				emit(cb, "created", rel)

			case ev.Op&fsnotify.Write != 0:
				logger.Debug("watcher: node updated", slog.String("path", rel))
				emit(cb, "updated", rel)

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				logger.Debug("watcher: node deleted", slog.String("path", rel))
				emit(cb, "deleted", rel)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func emit(cb EventCallback, kind, rel string) {
	if cb != nil {
		cb(kind, filepath.ToSlash(rel))
	}
}

// reportNewDir reports node files found in a newly created directory, which
// may have been moved in whole from outside the realm.
func reportNewDir(root, dirPath string, rec Recognizer, hiddenPrefix string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if hiddenPrefix != "" && strings.HasPrefix(d.Name(), hiddenPrefix) && path != dirPath {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !rec.Recognized(d.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		logger.Debug("watcher: node found in new dir", slog.String("path", rel))
		emit(cb, "created", rel)
		return nil
	})
}

// addDirsRecursive adds root and all its non-hidden subdirectories to the
// watcher.
func addDirsRecursive(w *fsnotify.Watcher, root, hiddenPrefix string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if hiddenPrefix != "" && strings.HasPrefix(d.Name(), hiddenPrefix) && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
