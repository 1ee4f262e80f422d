package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ferrant/nous/internal/resolver"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) record(kind, path string) {
	l.mu.Lock()
	l.events = append(l.events, kind+":"+path)
	l.mu.Unlock()
}

func (l *eventLog) has(want string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e == want {
			return true
		}
	}
	return false
}

func startWatcher(t *testing.T, root string, log *eventLog) {
	t.Helper()
	rec := resolver.New(resolver.Config{Extensions: []string{"md"}, HiddenPrefix: "."}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = Watch(ctx, root, rec, ".", testLogger(), log.record) }()
	time.Sleep(100 * time.Millisecond)
}

func TestWatch_NewFileReported(t *testing.T) {
	root := t.TempDir()
	var log eventLog
	startWatcher(t, root, &log)

	_ = os.WriteFile(filepath.Join(root, "new.md"), []byte("# New"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:new.md")
	}, "expected created:new.md event")
}

func TestWatch_UnrecognizedExtensionIgnored(t *testing.T) {
	root := t.TempDir()
	var log eventLog
	startWatcher(t, root, &log)

	_ = os.WriteFile(filepath.Join(root, "image.png"), []byte{1, 2, 3}, 0o644)
	_ = os.WriteFile(filepath.Join(root, "note.md"), []byte("x"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:note.md")
	}, "expected created:note.md event")

	if log.has("created:image.png") {
		t.Error("unrecognized extension should not be reported")
	}
}

func TestWatch_NewDirWatched(t *testing.T) {
	root := t.TempDir()
	var log eventLog
	startWatcher(t, root, &log)

	subDir := filepath.Join(root, "subdir")
	_ = os.MkdirAll(subDir, 0o755)
	time.Sleep(200 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "deep.md"), []byte("# Deep"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:subdir/deep.md")
	}, "expected event from file in new subdir")
}

func TestWatch_DeleteReported(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "del.md")
	_ = os.WriteFile(path, []byte("# Delete Me"), 0o644)

	var log eventLog
	startWatcher(t, root, &log)

	_ = os.Remove(path)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("deleted:del.md")
	}, "expected deleted:del.md event")
}
