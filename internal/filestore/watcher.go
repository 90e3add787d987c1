package filestore

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports slot keys whose files changed on disk. Changes written by
// this process are reported too; a reload then reads back what the store
// already holds.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(key string)
	logger   *log.Logger
}

func NewWatcher(dir *Dir, onChange func(key string), logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir.Root()); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &Watcher{watcher: w, onChange: onChange, logger: logger}, nil
}

// Watch blocks until ctx is cancelled or the underlying watcher closes.
func (w *Watcher) Watch(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			key, ok := KeyForPath(event.Name)
			if !ok {
				continue
			}
			w.logger.Printf("slot %s changed on disk", key)
			w.onChange(key)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("slot watcher error: %v", err)
		}
	}
}
