package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/stagelayout/store"
)

// reloader is implemented by *stagelayout.Editor.
type reloader interface {
	RequestReload()
}

// watchSlot watches the file that backs slot and asks r to reload whenever
// it is written or replaced. It watches the directory rather than the file
// so atomic renames are seen. The returned stop function ends the watch.
func watchSlot(ctx context.Context, fs *store.FileStore, slot string, r reloader, logger *log.Logger) (stop func() error, err error) {
	target, err := filepath.Abs(fs.Path(slot))
	if err != nil {
		return nil, fmt.Errorf("resolve slot path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(fs.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", fs.Dir(), err)
	}
	logger.Debug("watching slot", "path", target)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || name != target {
					continue
				}
				logger.Debug("slot changed", "path", name, "op", event.Op.String())
				r.RequestReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "err", err)
			}
		}
	}()

	return func() error {
		err := watcher.Close()
		<-done
		return err
	}, nil
}
