package goku

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce drops repeat events for the same file within this window.
const reloadDebounce = 100 * time.Millisecond

// Watcher reports changes to scene specs, tile maps and behaviour scripts.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs (or single files) for changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < reloadDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo", ".txt":
		return true
	}
	return false
}

// Watch forwards changes reported by w to the frame loop. For every changed
// path, reload is asked for a ReloadFunc; a nil result ignores the change.
// The queued functions run at the end of the next Update. Watch returns
// immediately; forwarding stops when w is closed.
func (s *Scene) Watch(w *Watcher, reload func(path string) ReloadFunc) {
	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				if fn := reload(path); fn != nil {
					s.logger.Info("file changed", "path", path)
					s.QueueReload(fn)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Error("watch error", "err", err)
			}
		}
	}()
}
