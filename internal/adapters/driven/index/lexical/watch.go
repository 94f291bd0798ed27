package lexical

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// Watch reloads the intent table whenever the definition file changes.
// It blocks until the context is cancelled. Reload failures are logged
// and the previous table stays in effect; a broken edit must not take
// the assistant down mid-session.
//
// The watch is placed on the containing directory, not the file: editors
// and our own persister replace the file by rename, which would destroy
// a watch on the file itself after the first change.
func (idx *Index) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	name := filepath.Base(path)
	logger.Debug("Watching intent definition %s", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := idx.LoadFile(path); err != nil {
				logger.Warn("Intent reload failed, keeping previous table: %v", err)
				continue
			}
			logger.Info("Intent table reloaded (%d intents)", idx.Count())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Intent watcher error: %v", err)
		}
	}
}
