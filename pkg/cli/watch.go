package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// inputWatcher reports changes to a fixed set of input files. It watches
// their directories so editors that save by replacing the file keep
// triggering events.
type inputWatcher struct {
	watcher *fsnotify.Watcher
	inputs  map[string]bool
	logger  *logrus.Entry
}

func newInputWatcher(paths []string, logger *logrus.Entry) (*inputWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &inputWatcher{
		watcher: watcher,
		inputs:  make(map[string]bool, len(paths)),
		logger:  logger,
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		w.inputs[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run calls reload after every write to or creation of an input file until
// ctx is done. Reload errors are logged and the loop carries on.
func (w *inputWatcher) Run(ctx context.Context, reload func(context.Context) error) error {
	w.logger.Infof("Watching %d input files for changes", len(w.inputs))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.isInput(event.Name) {
				continue
			}

			w.logger.WithField("file", event.Name).Info("Input changed, regenerating")
			if err := reload(ctx); err != nil {
				w.logger.WithError(err).Error("Regeneration failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")
		}
	}
}

// Close stops watching
func (w *inputWatcher) Close() error {
	return w.watcher.Close()
}

func (w *inputWatcher) isInput(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.inputs[abs]
}
