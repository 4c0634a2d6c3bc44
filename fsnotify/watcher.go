// Package fsnotify watches the files an editor session depends on, such as
// the open source file and its diagnostics file, with debouncing.
package fsnotify

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	fsnotifylib "github.com/fsnotify/fsnotify"
	"github.com/fwojciec/kisspad/log"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a set of files. Bursts of events within the
// debounce period are reported once, with every path that changed.
type Watcher struct {
	fsWatcher *fsnotifylib.Watcher
	debounce  time.Duration
	files     map[string]struct{}
	onChange  chan []string
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a Watcher for paths. A debounce of zero uses DefaultDebounce.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("fsnotify: no paths to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotifylib.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: creating watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		files:     make(map[string]struct{}, len(paths)),
		onChange:  make(chan []string, 1),
		done:      make(chan struct{}),
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("fsnotify: resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
	}
	return w, nil
}

// Start begins watching. Directories are watched rather than files so that
// editors replacing a file by rename are still seen.
// The returned channel receives the absolute paths that changed.
func (w *Watcher) Start() (<-chan []string, error) {
	dirs := map[string]struct{}{}
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("fsnotify: watching directory %s: %w", dir, err)
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending = map[string]struct{}{}
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, relevant := w.relevant(event)
			if !relevant {
				continue
			}
			pending[path] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			select {
			case w.onChange <- paths:
				pending = map[string]struct{}{}
				log.Debug(log.CatWatch, "files changed", "paths", paths)
			default:
				// Receiver is behind; keep the paths and try again later.
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatch, "watch error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether event touches a watched file.
func (w *Watcher) relevant(event fsnotifylib.Event) (string, bool) {
	if event.Op&(fsnotifylib.Write|fsnotifylib.Create|fsnotifylib.Rename) == 0 {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	_, ok := w.files[abs]
	return abs, ok
}
