package background

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of write events an image editor produces
// while saving a file.
const debounceDelay = 250 * time.Millisecond

// Watcher observes the current background image file and invokes a callback
// when it is rewritten on disk, so an externally edited map shows up without
// reloading by hand. The parent directory is watched rather than the file
// itself: editors that save via rename would otherwise detach the watch.
type Watcher struct {
	mu       sync.Mutex
	base     *fsnotify.Watcher
	path     string // absolute path of the watched file, "" = none
	dir      string // directory currently added to the watcher
	pending  *time.Timer
	onChange func(path string)
	done     chan struct{}
}

// NewWatcher creates a watcher delivering change notifications to onChange.
// The callback runs on a background goroutine; callers must hand off to the
// UI thread themselves.
func NewWatcher(onChange func(path string)) (*Watcher, error) {
	base, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		base:     base,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.eventLoop()
	return w, nil
}

// Watch switches the watcher to the given file, replacing any previous watch.
// An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" {
		_ = w.base.Remove(w.dir)
		w.dir = ""
	}
	w.path = ""
	if path == "" {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := w.base.Add(dir); err != nil {
		return err
	}
	w.path = abs
	w.dir = dir
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	_ = w.base.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.base.Events:
			if !ok {
				return
			}
			w.processEvent(&ev)
		case err, ok := <-w.base.Errors:
			if !ok {
				return
			}
			log.Printf("background watcher: %v", err)
		}
	}
}

func (w *Watcher) processEvent(ev *fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.path == "" || filepath.Clean(ev.Name) != w.path {
		return
	}

	// Debounce: fire once the writes settle.
	path := w.path
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, func() {
		w.onChange(path)
	})
}
