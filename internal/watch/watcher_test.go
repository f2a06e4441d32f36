package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "event channel closed early")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return Event{}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("one two"), 0644))

	w, err := New(path, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Stop()

	ch, err := w.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("one two three"), 0644))

	ev := waitEvent(t, ch)
	require.NoError(t, ev.Err)
	assert.Equal(t, "one two three", ev.Text)
	assert.Equal(t, w.Path(), ev.Path)
	assert.GreaterOrEqual(t, w.Stats().Reloads, 1)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w, err := New(path, 30*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Stop()

	ch, err := w.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0644))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected reload: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, 0, w.Stats().Writes)
}

func TestWatcher_UsesLoadFunc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# a"), 0644))

	load := func(_ context.Context, p string) (string, error) {
		return "loaded:" + filepath.Base(p), nil
	}
	w, err := New(path, 30*time.Millisecond, load)
	require.NoError(t, err)
	defer w.Stop()

	ch, err := w.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("# b"), 0644))

	ev := waitEvent(t, ch)
	assert.Equal(t, "loaded:notes.md", ev.Text)
}

func TestWatcher_ContextCancelClosesChannel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := New(path, 0, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := w.Start(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing.txt"), 0, nil)
	require.NoError(t, err)
	w.Stop()
}
