// Package watch provides the form model to new sessions and optionally
// reloads it when the schema document changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/goliatone/go-formplay/pkg/model"
)

// Source yields the model new sessions mount with.
type Source interface {
	Current() model.FormModel
}

// Static is a Source that never changes.
type Static struct {
	Model model.FormModel
}

// Current returns the fixed model.
func (s Static) Current() model.FormModel {
	return s.Model
}

// LoadFunc builds the model from the watched document.
type LoadFunc func(ctx context.Context) (model.FormModel, error)

// DefaultDebounce is how long the document must stay quiet before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Reloader rebuilds the model whenever the watched file is written, created,
// or renamed into place. A failed reload keeps the previous model.
type Reloader struct {
	path     string
	load     LoadFunc
	logger   *zap.Logger
	debounce time.Duration
	current  atomic.Pointer[model.FormModel]
	reloaded chan struct{}
}

// Option customises a Reloader.
type Option func(*Reloader)

// WithDebounce sets the quiet period that must follow the last change event
// before the document is loaded. Saves usually arrive as a truncate followed
// by one or more writes; loading on the first event would read a partial
// document. Non-positive values keep DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// NewReloader performs the initial load. It fails when that load fails.
func NewReloader(ctx context.Context, path string, load LoadFunc, logger *zap.Logger, opts ...Option) (*Reloader, error) {
	if load == nil {
		return nil, errors.New("watch: load func is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloader{
		path:     filepath.Clean(path),
		load:     load,
		logger:   logger.Named("watch"),
		debounce: DefaultDebounce,
		reloaded: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	m, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("watch: initial load: %w", err)
	}
	r.current.Store(&m)
	return r, nil
}

// Current returns the latest successfully loaded model.
func (r *Reloader) Current() model.FormModel {
	return *r.current.Load()
}

// Reloaded receives a value after every successful reload. Notifications are
// dropped while one is pending.
func (r *Reloader) Reloaded() <-chan struct{} {
	return r.reloaded
}

// Run watches the document's directory until ctx is done. Watching the
// directory keeps working across editors that save by rename. Bursts of events
// collapse into a single reload once the document has been quiet for the
// debounce period.
func (r *Reloader) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", r.path, err)
	}
	r.logger.Info("watching form document", zap.String("path", r.path), zap.Duration("debounce", r.debounce))

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
		case <-fire:
			fire = nil
			r.reload(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	m, err := r.load(ctx)
	if err != nil {
		r.logger.Warn("reload failed, keeping previous form", zap.String("path", r.path), zap.Error(err))
		return
	}
	r.current.Store(&m)
	r.logger.Info("form reloaded", zap.String("path", r.path), zap.Int("fields", len(m.Fields)))
	select {
	case r.reloaded <- struct{}{}:
	default:
	}
}
