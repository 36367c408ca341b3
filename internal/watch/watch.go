// Package watch reports changes to a single file, typically the
// configuration file, so long-running surfaces can reload it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of writes from editors that save
// in several steps.
const DefaultDebounce = 250 * time.Millisecond

// ErrFileRemoved is reported when the watched file disappears.
var ErrFileRemoved = errors.New("watched file was removed")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before onChange fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher watches one file. It watches the parent directory so that
// atomic replace-on-save is seen as a change.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	onError  func(error)

	fsw *fsnotify.Watcher
}

// New starts watching path. Events that happen before Run is called
// are buffered, not lost.
func New(path string, onChange func(), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers debounced change notifications until ctx is done, then
// releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	target := filepath.Base(w.path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(ErrFileRemoved)
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			}

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		}
	}
}
