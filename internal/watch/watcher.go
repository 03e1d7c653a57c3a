// Package watch regenerates output whenever the catalog data directory
// changes. Rapid editor saves are debounced into a single regeneration.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wilddrones/preflight/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last event before
// firing the callback.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a catalog directory for JSON changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func()
	log      *logging.Logger
	fs       *fsnotify.Watcher
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce window. Tests shorten it.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher over dir that calls onChange after catalog files
// settle.
func New(dir string, onChange func(), log *logging.Logger, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		onChange: onChange,
		log:      log,
		fs:       fs,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks processing events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	// The timer starts stopped; each relevant event rewinds it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.log.Info("watching catalog directory", logging.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !isCatalogEvent(event) {
				continue
			}
			w.log.Debug("catalog change",
				logging.String("file", filepath.Base(event.Name)),
				logging.String("op", event.Op.String()),
			)
			timer.Stop()
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", logging.Error(err))

		case <-timer.C:
			w.onChange()
		}
	}
}

func isCatalogEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}
