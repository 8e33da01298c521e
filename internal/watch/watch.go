// Package watch turns file system changes to build inputs into
// assets.changed events and rebuilds the site when they settle.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/otherdev/site/internal/pubsub"
)

// Change describes one relevant file system event.
type Change struct {
	Path string `json:"path"`
	Op   string `json:"op"`
}

// AssetsChanged is published for every change to an icon or metadata file.
var AssetsChanged = pubsub.NewEvent[Change]("assets.changed")

var watchedExts = map[string]bool{
	".svg":  true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// Watcher publishes AssetsChanged for files in a set of directories.
type Watcher struct {
	publisher pubsub.Publisher
	dirs      []string
	files     map[string]bool
	logger    *slog.Logger
}

// NewWatcher creates a Watcher for the icon directory. Extra files, such as
// the metadata override, are watched through their parent directory.
func NewWatcher(publisher pubsub.Publisher, iconsDir string, files ...string) *Watcher {
	w := &Watcher{
		publisher: publisher,
		dirs:      []string{filepath.Clean(iconsDir)},
		files:     make(map[string]bool),
		logger:    slog.Default().With("component", "watch"),
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		f = filepath.Clean(f)
		w.files[f] = true
		w.dirs = append(w.dirs, filepath.Dir(f))
	}
	return w
}

// Run watches until ctx is cancelled. It returns an error only if the
// watcher cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	seen := make(map[string]bool)
	for _, dir := range w.dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("Added directory to watcher", "path", dir)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("File system watcher context cancelled")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File system watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !w.relevant(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	change := Change{Path: event.Name, Op: event.Op.String()}
	w.logger.Debug("File system event", "event", change.Op, "path", change.Path)
	if err := pubsub.Publish(ctx, w.publisher, AssetsChanged, change); err != nil {
		w.logger.Error("Failed to publish change", "path", change.Path, "error", err)
	}
}

func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	if filepath.Dir(path) != w.dirs[0] {
		return false
	}
	return watchedExts[strings.ToLower(filepath.Ext(path))]
}

// Rebuild subscribes to AssetsChanged and calls build once changes have been
// quiet for delay. It returns after subscribing; rebuilding stops with ctx.
func Rebuild(ctx context.Context, sub pubsub.Subscriber, delay time.Duration, build func(context.Context) error) error {
	trigger := make(chan struct{}, 1)
	err := pubsub.Subscribe(ctx, sub, AssetsChanged, func(ctx context.Context, c Change) error {
		slog.Info("Asset changed", "path", c.Path, "op", c.Op)
		select {
		case trigger <- struct{}{}:
		default:
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", AssetsChanged.Name(), err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-trigger:
			}

			timer := time.NewTimer(delay)
			for settled := false; !settled; {
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-trigger:
					timer.Reset(delay)
				case <-timer.C:
					settled = true
				}
			}

			if err := build(ctx); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}()
	return nil
}
