package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"admin-console/internal/debounce"
)

const reloadQuietPeriod = 150 * time.Millisecond

// Watch reparses the template directory whenever a template changes. It
// is a no-op for embedded templates and returns when ctx is cancelled.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}

	reloads := debounce.New(reloadQuietPeriod)
	defer reloads.Stop()

	slog.Info("watching templates", "dir", r.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".html" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			reloads.Trigger("templates", func() {
				if err := r.Reload(); err != nil {
					slog.Error("template reload failed; keeping previous set", "error", err)
					return
				}
				slog.Info("templates reloaded", "dir", r.dir)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("template watcher error", "error", err)
		}
	}
}
