package checks

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs the checks for filenames whenever one of them changes on
// disk, debouncing bursts of events from editors that write several times.
// It blocks until ctx is cancelled; results go to onResult after each run.
func Watch(ctx context.Context, c *Config, filenames []string, debounce time.Duration, onResult func([]Failure)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent directories: editors replace files by rename, which
	// drops a watch registered on the file itself.
	dirs := map[string]bool{}
	watched := map[string]bool{}
	for _, name := range filenames {
		abs := c.path(name)
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	pending := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.logger().Debug("change detected", "file", event.Name, "op", event.Op)
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger().Warn("watch error", "error", err)

		case <-timer.C:
			pending = false
			onResult(Run(ctx, c, filenames))
		}
	}
}
