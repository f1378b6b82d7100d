package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesChanges(t *testing.T) {
	root := t.TempDir()
	day := filepath.Join(root, "2024", "06", "01")
	require.NoError(t, os.MkdirAll(day, 0o755))

	w, err := NewWatcher(root, 200*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() { changes <- struct{}{} }) }()

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(day, name), []byte("{}"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()

	w, err := NewWatcher(root, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 1)
	go func() { _ = w.Run(ctx, func() { changes <- struct{}{} }) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-changes:
		t.Fatal("non-record file reported")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewWatcherMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, nil)
	assert.Error(t, err)
}
