package settings

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports on-disk changes to a settings file until closed.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch invokes onChange whenever the store's read path is written, created
// or replaced on disk. The parent directory is watched rather than the file
// itself, so editors that save by rename are still detected.
//
// The notification is advisory: onChange runs on the watcher's goroutine,
// and the store itself stays single-threaded and unlocked. Callers decide
// when to reload and must not touch the store concurrently with other use.
func (s *Store[T]) Watch(onChange func()) (*Watcher, error) {
	fileWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create settings watcher: %w", err)
	}

	err = fileWatcher.Add(filepath.Dir(s.readPath))
	if err != nil {
		_ = fileWatcher.Close()

		return nil, fmt.Errorf("failed to watch settings directory: %w", err)
	}

	watcher := &Watcher{
		watcher: fileWatcher,
		done:    make(chan struct{}),
	}

	target := filepath.Clean(s.readPath)
	logger := s.logger

	go func() {
		defer close(watcher.done)

		for {
			select {
			case event, ok := <-fileWatcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != target {
					continue
				}

				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					onChange()
				}
			case watchErr, ok := <-fileWatcher.Errors:
				if !ok {
					return
				}

				logger.Warnf("settings watcher error: %v", watchErr)
			}
		}
	}()

	return watcher, nil
}

// Close stops watching and waits for the notification goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done

	if err != nil {
		return fmt.Errorf("failed to close settings watcher: %w", err)
	}

	return nil
}
