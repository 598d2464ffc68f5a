package config

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtime cache and begins polling in a goroutine.
func (w *FileWatcher) Start() {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll checks mtimes and invokes onChange for files that changed since
// last scan. A file that appears or disappears after priming counts as a
// change.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		last, seen := w.lastMTime[p]
		if err != nil {
			if seen {
				delete(w.lastMTime, p)
				w.fire(p, prime)
			}
			continue
		}
		mt := fi.ModTime()
		if !seen || mt.After(last) {
			w.lastMTime[p] = mt
			w.fire(p, prime)
		}
	}
}

func (w *FileWatcher) fire(path string, prime bool) {
	if !prime && w.onChange != nil {
		w.onChange(path)
	}
}
