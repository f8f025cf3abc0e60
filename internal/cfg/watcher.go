package cfg

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// WatchError represents an error encountered by a profile watcher.
type WatchError struct {
	Err   error
	Fatal bool
}

// Watcher sends the re-read configuration whenever a profile file is
// updated on disk.
type Watcher struct {
	Errors  chan WatchError
	Updates chan Config

	active  bool
	path    string
	stopch  chan bool
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new Watcher for the named profile. The profile file
// must exist; hot reload of the embedded defaults makes no sense.
func NewWatcher(name string) (*Watcher, error) {
	path, err := ProfilePath(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &Watcher{
		Errors:  make(chan WatchError, 8),
		Updates: make(chan Config, 8),
		path:    path,
		stopch:  make(chan bool, 1),
	}, nil
}

// Watch spawns a goroutine which sends the freshly parsed configuration
// whenever the profile file it is watching is written to.
func (w *Watcher) Watch() error {
	if w.active {
		return fmt.Errorf("watcher is already running")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher
	if err = w.watcher.Add(w.path); err != nil {
		w.watcher.Close()
		return err
	}

	w.active = true
	go func() {
		defer w.cleanup()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.Errors <- WatchError{Err: fmt.Errorf("watcher closed"), Fatal: true}
					return
				}
				if event.Op&fsnotify.Write == 0 {
					continue
				}
				contents, err := os.ReadFile(w.path)
				if err != nil {
					w.Errors <- WatchError{Err: err}
					continue
				}
				conf, err := Parse(contents)
				if err != nil {
					// A malformed edit keeps the previous config active.
					w.Errors <- WatchError{Err: err}
					continue
				}
				w.Updates <- conf
			case err, ok := <-w.watcher.Errors:
				w.Errors <- WatchError{Err: err, Fatal: !ok}
				if !ok {
					return
				}
			case <-w.stopch:
				return
			}
		}
	}()
	return nil
}

// Stop stops watching the profile file.
func (w *Watcher) Stop() {
	if w.active {
		w.stopch <- true
	}
}

func (w *Watcher) cleanup() {
	w.active = false
	w.watcher.Close()
	close(w.Updates)
	close(w.Errors)
}
