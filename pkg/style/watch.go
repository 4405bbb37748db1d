package style

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/treekit/pkg/logging"
)

// watchDebounce absorbs the burst of events editors emit for one save.
const watchDebounce = 150 * time.Millisecond

// Watch reloads the style file at path whenever it changes and passes the
// new preferences to onChange. The parent directory is watched rather
// than the file so that editors which save by rename are picked up.
//
// A file that fails to parse is logged and skipped; the previous
// preferences stay in effect. Watch returns once the watcher is running;
// it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Prefs)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve style path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch style dir: %w", err)
	}

	go func() {
		defer w.Close()
		var (
			timer  *time.Timer
			fire   <-chan time.Time
			reload = func() {
				p, err := LoadFile(abs)
				if err != nil {
					logging.Warn("style", "keeping previous style: %v", err)
					return
				}
				logging.Debug("style", "reloaded %s", abs)
				onChange(p)
			}
		)
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Warn("style", "watcher error: %v", err)
			}
		}
	}()
	return nil
}
