package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 300 * time.Millisecond

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".workway":     true,
	"dist":         true,
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for file change events.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for the watcher.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.logger = l }
}

// Watcher reports workflow sources that changed on disk. It watches
// directories rather than files so atomic saves (rename-over) are seen.
type Watcher struct {
	dirs     []string
	match    func(path string) bool
	onChange func(paths []string)
	debounce time.Duration
	logger   *zap.SugaredLogger

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	mu      sync.Mutex
	pending map[string]time.Time // path -> last event time
}

// New creates a Watcher over dirs. Only paths accepted by match are
// reported; onChange receives them sorted, once per quiet period.
func New(dirs []string, match func(path string) bool, onChange func(paths []string), opts ...Option) *Watcher {
	w := &Watcher{
		dirs:     dirs,
		match:    match,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   zap.NewNop().Sugar(),
		done:     make(chan struct{}),
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dirs expands paths into the set of directories to watch: every directory
// under a directory argument, and the parent of a file argument.
func Dirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != p && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// Start registers the directories and begins delivering changes. The
// watcher stops when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create fsnotify: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("watcher: watch %s: %w", dir, err)
		}
	}
	w.fsWatcher = fsw

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop terminates the watcher and waits for the background goroutine to exit.
// It is safe to call Stop multiple times.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.match(event.Name) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorw("watcher error", "err", err)

		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	// A rename-away leaves nothing to validate.
	existing := ready[:0]
	for _, path := range ready {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return
	}

	sort.Strings(existing)
	w.logger.Debugw("sources changed", "paths", existing)
	w.onChange(existing)
}
