package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/otherdev/site/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_PublishesRelevantChanges(t *testing.T) {
	iconsDir := t.TempDir()
	confDir := t.TempDir()
	metaFile := filepath.Join(confDir, "site.yaml")

	bridge := pubsub.NewWatermillBridge(false)
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Change, 16)
	require.NoError(t, pubsub.Subscribe(ctx, bridge, AssetsChanged, func(ctx context.Context, c Change) error {
		changes <- c
		return nil
	}))

	w := NewWatcher(bridge, iconsDir, metaFile)
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the watcher a moment to register its directories.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(iconsDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "other.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(iconsDir, "external-link.svg"), []byte("<svg/>"), 0644))
	require.NoError(t, os.WriteFile(metaFile, []byte("title: x"), 0644))

	got := map[string]bool{}
	deadline := time.After(3 * time.Second)
	for len(got) < 2 {
		select {
		case c := <-changes:
			got[filepath.Base(c.Path)] = true
		case <-deadline:
			t.Fatalf("expected changes for the icon and metadata file, got %v", got)
		}
	}
	assert.True(t, got["external-link.svg"])
	assert.True(t, got["site.yaml"])
	assert.False(t, got["notes.txt"])
	assert.False(t, got["other.yaml"])

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	bridge := pubsub.NewWatermillBridge(false)
	defer bridge.Close()

	w := NewWatcher(bridge, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, w.Run(context.Background()))
}

func TestRebuild_Debounces(t *testing.T) {
	bridge := pubsub.NewWatermillBridge(false)
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	require.NoError(t, Rebuild(ctx, bridge, 200*time.Millisecond, func(ctx context.Context) error {
		builds.Add(1)
		return nil
	}))

	for i := 0; i < 5; i++ {
		require.NoError(t, pubsub.Publish(ctx, bridge, AssetsChanged, Change{Path: "a.svg", Op: "WRITE"}))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load(), "a burst of changes triggers a single build")
}
