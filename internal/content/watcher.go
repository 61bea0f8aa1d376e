package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reports edits below a set of directories, batching bursts of
// events into a single callback.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	onChange func()
}

// NewWatcher watches every directory below roots. Missing roots are
// skipped. onChange runs on the watcher goroutine.
func NewWatcher(logger *zap.Logger, onChange func(), roots ...string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content: start watcher: %w", err)
	}
	w := &Watcher{fs: fsw, debounce: defaultDebounce, logger: logger, onChange: onChange}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// WithDebounce overrides the quiet period before onChange fires.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

func (w *Watcher) addTree(root string) error {
	if _, err := os.Stat(root); err != nil {
		w.logger.Warn("watch root unavailable", zap.String("root", root), zap.Error(err))
		return nil
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("content: watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers change notifications until ctx is done, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("content changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addTree(ev.Name)
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}
