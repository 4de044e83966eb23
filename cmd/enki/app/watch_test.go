package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "model.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, err := NewWatcher([]string{watched}, 50*time.Millisecond, discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { calls.Add(1) })
	}()

	// Writes before the watch is registered are lost, so keep writing.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(other, []byte("x"), 0o644)
		_ = os.WriteFile(watched, []byte("b"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	// A burst of writes fires once.
	time.Sleep(150 * time.Millisecond)
	calls.Store(0)
	for range 5 {
		require.NoError(t, os.WriteFile(watched, []byte("c"), 0o644))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	// Unrelated files never fire.
	calls.Store(0)
	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "model.yaml")}, time.Millisecond, discard)
	require.NoError(t, err)
	err = w.Run(context.Background(), func() {})
	assert.ErrorContains(t, err, "cannot watch")
}

func TestGenerateWatch(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(sampleModel)
	require.NoError(t, err)
	model := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(model, data, 0o644))
	target := filepath.Join(dir, "out")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := New()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-q", "generate", "-w", "--debounce", "20ms", "-o", target, model})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	props := filepath.Join(target, "enki.properties")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(props)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, os.Remove(props))

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(model, data, 0o644)
		_, err := os.Stat(props)
		return err == nil
	}, 5*time.Second, 100*time.Millisecond, "regenerated after the model changed")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("generate --watch did not stop")
	}
}
