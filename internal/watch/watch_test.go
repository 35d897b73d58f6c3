package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/store"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestNew_Validation(t *testing.T) {
	_, err := New("", store.New())
	assert.Error(t, err)

	_, err = New("doc.json", nil)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	w, err := New(path, store.New())
	require.NoError(t, err)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: path, Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteDocument(t, dir, "doc.json", testsupport.SampleDocument())

	s := store.New()
	var reloaded model.Document
	w, err := New(path, s, WithOnReload(func(doc model.Document) { reloaded = doc }))
	require.NoError(t, err)

	require.NoError(t, w.Reload(context.Background()))
	assert.Equal(t, "Jane Q. Public", s.Snapshot().Name)
	assert.Equal(t, "Jane Q. Public", reloaded.Name)
}

func TestReload_FailureKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json or yaml: ["), 0o600))

	s := store.New(store.WithDocument(testsupport.SampleDocument()))
	w, err := New(path, s)
	require.NoError(t, err)

	assert.Error(t, w.Reload(context.Background()))
	assert.Equal(t, "Jane Q. Public", s.Snapshot().Name)
}

func TestRun_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteDocument(t, dir, "doc.json", model.NewDocument())

	s := store.New()
	reloads := make(chan model.Document, 16)
	w, err := New(path, s,
		WithDebounce(10*time.Millisecond),
		WithOnReload(func(doc model.Document) { reloads <- doc }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	updated := testsupport.SampleDocument()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

wait:
	for {
		select {
		case doc := <-reloads:
			if doc.Name == updated.Name {
				break wait
			}
		case <-ticker.C:
			// The watcher may not be registered yet; keep saving.
			testsupport.WriteDocument(t, dir, "doc.json", updated)
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	assert.Equal(t, updated.Name, s.Snapshot().Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
