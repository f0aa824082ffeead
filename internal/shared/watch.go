package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of write events editors emit on save.
const watchDebounce = 250 * time.Millisecond

// WatchConfig watches the config file at path and invokes onChange with each
// successfully re-parsed configuration. A file that fails to parse is logged
// and skipped, leaving the last good config in effect.
//
// The watcher runs until ctx is cancelled.
func WatchConfig(ctx context.Context, path string, logger *log.Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
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
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					config, err := LoadConfig(path)
					if err != nil {
						logger.Warnf("config reload skipped: %v", err)
						return
					}
					logger.Infof("config reloaded from %s", path)
					onChange(config)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher error: %v", err)
			}
		}
	}()

	return nil
}
