package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yamldoc/internal/adapters/watcher"
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/yamldoc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_Events(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, domain.StateDirName), domain.DirPerm))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context(), root))
	t.Cleanup(func() { _ = w.Stop() })

	events := make(chan ports.WatchEvent, 16)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	// Writes below the state directory are ignored.
	ignored := filepath.Join(root, domain.StateDirName, "store.json")
	require.NoError(t, os.WriteFile(ignored, []byte("{}"), domain.FilePerm))

	doc := filepath.Join(root, "data", "home.yml")
	require.NoError(t, os.WriteFile(doc, []byte("a: 1\n"), domain.FilePerm))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed early")
			assert.NotEqual(t, ignored, ev.Path)
			if ev.Path == doc {
				return
			}
		case <-deadline:
			t.Fatal("no event for the written document")
		}
	}
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context(), t.TempDir()))
	require.NoError(t, w.Stop())

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end after Stop")
	}
}
