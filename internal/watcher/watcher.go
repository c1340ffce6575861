// Package watcher reloads the check manifest when it changes on disk, so a
// long-running daemon picks up new mirror pairs without a restart.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is invoked after the manifest file changed and the edit
// burst settled.
type ChangeCallback func(path string)

// ManifestWatcher monitors one manifest file for writes.
type ManifestWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	callback ChangeCallback
	debounce time.Duration

	timer *time.Timer
	mu    sync.Mutex

	cancel context.CancelFunc
}

// New creates a watcher for the given manifest path. The containing
// directory is watched so editors that replace the file atomically are
// still observed.
func New(path string, callback ChangeCallback) (*ManifestWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &ManifestWatcher{
		watcher:  fsw,
		path:     abs,
		callback: callback,
		debounce: 500 * time.Millisecond, // Debounce rapid changes
	}, nil
}

// Start begins watching for file changes
func (w *ManifestWatcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				w.scheduleCallback()

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (w *ManifestWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *ManifestWatcher) scheduleCallback() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.callback(w.path)
	})
}

// Close stops watching.
func (w *ManifestWatcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.watcher.Close()
}
