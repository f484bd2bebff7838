// Package fsnotify watches a roster file for changes using
// github.com/fsnotify/fsnotify. Editors often write a file several times
// per save (and some replace it via rename), so events are debounced and
// the parent directory is watched rather than the file itself.
package fsnotify

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 200 * time.Millisecond

// Watcher fires a callback when one specific file changes.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a file watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring path. onChange fires (debounced) whenever the
// file is written, created, or renamed into place.
func (w *Watcher) Watch(path string, onChange func()) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Watch the directory: a rename-into-place replaces the inode and a
	// direct file watch would silently die.
	if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	go func() {
		var last time.Time
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if event.Name != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				now := time.Now()
				if now.Sub(last) < debounceInterval {
					continue
				}
				last = now
				onChange()

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
