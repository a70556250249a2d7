package retro

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a YAML config file whenever it changes on disk.
// Parsed configs arrive on Updates; load and watch failures on Errors.
// Attach it to a Canvas with AttachConfigWatcher to apply reloads within one
// frame.
type ConfigWatcher struct {
	Updates chan Config
	Errors  chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path. The parent directory is watched so that
// editors which replace the file via rename are still observed.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("retro: watch config %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("retro: watch config %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("retro: watch config %s: %w", path, err)
	}

	cw := &ConfigWatcher{
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		watcher: w,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Path returns the absolute path being watched.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

// run reloads the file once events for it have been quiet for
// watchDebounce, so a truncate followed by a write yields one reload of the
// final contents.
func (w *ConfigWatcher) run() {
	defer close(w.done)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendUpdate(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(fmt.Errorf("retro: watch config %s: %w", w.path, err))
		case <-w.closeCh:
			return
		}
	}
}

// sendUpdate replaces any config the frame loop has not picked up yet, so
// only the newest reload is applied.
func (w *ConfigWatcher) sendUpdate(cfg Config) {
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *ConfigWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

// AttachConfigWatcher makes the canvas apply every config the watcher
// reloads. Pending reloads are picked up at the start of each Update, before
// the compositor syncs, so an edit on disk is visible within one frame. The
// canvas closes the watcher on Dispose.
func (c *Canvas) AttachConfigWatcher(w *ConfigWatcher) {
	c.watcher = w
}

func (c *Canvas) pollWatcher() {
	if c.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-c.watcher.Updates:
			if !ok {
				c.watcher = nil
				return
			}
			*c.config = cfg
			if c.debug {
				fmt.Fprintf(os.Stderr, "[retro] config reloaded from %s\n", c.watcher.Path())
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				c.watcher = nil
				return
			}
			fmt.Fprintf(os.Stderr, "[retro] config reload: %v\n", err)
		default:
			return
		}
	}
}
