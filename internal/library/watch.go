package library

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports card-file changes in an import directory so the browser
// can refresh its list without restarting.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
}

// Watch starts watching dir for card JSON changes. Events are coalesced to
// a bare signal; consumers re-scan on receipt.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fs:     fw,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events yields a signal whenever a card file was created, written, or
// removed. The channel carries at most one pending signal.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(strings.ToLower(ev.Name), ".json") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default: // signal already pending
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watcher errors are non-fatal; the list just stops refreshing.
		}
	}
}
