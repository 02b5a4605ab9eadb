package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FinnWang/device-power-analyzer/internal/logger"
)

const debounceInterval = 200 * time.Millisecond

// WatchEvent reports one capture file appearing or changing in the
// watched directory.
type WatchEvent struct {
	Path string
	Err  error
}

// Watcher watches a directory for capture CSVs and emits debounced
// events. A burst of writes to the same file (loggers flush in chunks)
// collapses into one event after the burst settles.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	events  chan WatchEvent
	stop    chan struct{}

	mu       sync.Mutex
	debounce map[string]*time.Timer
}

// NewWatcher starts watching dir for CSV changes.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		watcher:  fsw,
		events:   make(chan WatchEvent, 16),
		stop:     make(chan struct{}),
		debounce: make(map[string]*time.Timer),
	}
	go w.watchLoop()
	return w, nil
}

// Events returns the debounced event stream.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// watchLoop handles file system events with per-file debouncing.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleEmit(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.emit(WatchEvent{Err: err})

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) scheduleEmit(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceInterval, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()
		w.emit(WatchEvent{Path: path})
	})
}

func (w *Watcher) emit(ev WatchEvent) {
	select {
	case w.events <- ev:
	case <-w.stop:
	}
}

// Close stops the watcher. Pending debounce timers are cancelled.
func (w *Watcher) Close() error {
	close(w.stop)

	w.mu.Lock()
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
