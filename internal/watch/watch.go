// Package watch reports changes to a single file.
//
// The parent directory is watched rather than the file itself: editors
// commonly save by writing a temporary file and renaming it over the
// original, which would drop a watch on the old inode.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/glrender"
)

// Watcher signals when its file is written, created or replaced.
// Bursts of events between two polls collapse into one signal.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	changed chan struct{}

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New starts watching path. The file's directory must exist.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch: %s: %w", path, err)
	}

	w := &Watcher{
		fsw:     fsw,
		path:    abs,
		changed: make(chan struct{}, 1),
	}
	w.wg.Add(1)
	go w.loop()
	glrender.Logger().Debug("watching file", "path", abs)
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			glrender.Logger().Debug("file changed", "path", w.path, "op", ev.Op.String())
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			glrender.Logger().Warn("file watch error", "path", w.path, "err", err)
		}
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// C returns a channel that receives a value after the file changes.
func (w *Watcher) C() <-chan struct{} { return w.changed }

// Changed reports, without blocking, whether the file changed since the
// last call.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
		w.wg.Wait()
	})
	return w.closeErr
}
