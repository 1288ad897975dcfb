package gwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"multiverse/src/logx"
)

// Settle is how long a file must stay quiet before a change is reported,
// editors and the engine write in several chunks
const Settle = 50 * time.Millisecond

// Watcher reports writes to individual files. The parent directory is
// watched, so files replaced by rename are still followed.
type Watcher struct {
	logx    logx.Logger
	fs      *fsnotify.Watcher
	changes chan string

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]bool
	timers map[string]*time.Timer
}

func New(l logx.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error create watcher: %w", err)
	}
	return &Watcher{
		logx:    l,
		fs:      fw,
		changes: make(chan string, 8),
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Add starts following path and returns the cleaned absolute name that
// Changes will report
func (w *Watcher) Add(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return "", fmt.Errorf("error watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	w.logx.Debugf("watching %s", abs)
	return abs, nil
}

// Changes yields the absolute name of every settled file change
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Run pumps events until ctx ends or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.touch(ctx, filepath.Clean(ev.Name))
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logx.Warnf("watch: %v", err)
		}
	}
}

func (w *Watcher) touch(ctx context.Context, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[name] {
		return
	}
	if t, ok := w.timers[name]; ok {
		t.Reset(Settle)
		return
	}
	w.timers[name] = time.AfterFunc(Settle, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		select {
		case w.changes <- name:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}
