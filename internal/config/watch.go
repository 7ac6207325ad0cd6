package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the result of each reload. A failed reload reports
// the error and a zero Config; the caller keeps its previous settings.
type ReloadFunc func(cfg Config, err error)

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// Watch reloads the file at path with Load whenever it is written or
// recreated, calling fn from a single background goroutine. Watching stops
// when ctx is done.
//
// The parent directory is watched rather than the file, so editors that
// save by rename are still seen.
func Watch(ctx context.Context, path string, fn ReloadFunc, opts ...WatchOption) error {
	o := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return err
	}

	go watchLoop(ctx, fsw, absPath, fn, o.debounce)
	return nil
}

func watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, fn ReloadFunc, debounce time.Duration) {
	defer func() { _ = fsw.Close() }()

	// fire is nil while nothing is pending; each event restarts the wait.
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			cfg, err := Load(path)
			fn(cfg, err)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			fn(Config{}, err)
		}
	}
}
