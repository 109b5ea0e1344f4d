// Package watch triggers a callback when watched files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for a burst of events to end.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange once per burst of changes under Paths. Directories
// are watched recursively, including subdirectories created later. Files are
// watched through their parent directory, so saves that replace the file by
// renaming a temporary file over it keep being seen.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func()
	Logger   zerolog.Logger

	dirs  map[string]bool
	files map[string]bool
}

// Run watches until ctx is cancelled. Paths that do not exist are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	w.dirs = make(map[string]bool)
	w.files = make(map[string]bool)
	watched := 0
	for _, root := range w.Paths {
		n, err := w.add(fw, root)
		if err != nil {
			return err
		}
		watched += n
	}
	if watched == 0 {
		return fmt.Errorf("nothing to watch in %v", w.Paths)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.Logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			if event.Has(fsnotify.Create) && w.dirs[filepath.Dir(filepath.Clean(event.Name))] && isDir(event.Name) {
				if _, err := w.add(fw, event.Name); err != nil {
					w.Logger.Warn().Err(err).Str("path", event.Name).Msg("watch new directory")
				}
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if ctx.Err() == nil {
					w.OnChange()
				}
			})
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// add registers root and, for directories, every subdirectory. It returns
// how many paths were added.
func (w *Watcher) add(fw *fsnotify.Watcher, root string) (int, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		w.Logger.Debug().Str("path", root).Msg("not found, not watching")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		file := filepath.Clean(root)
		if err := fw.Add(filepath.Dir(file)); err != nil {
			return 0, fmt.Errorf("watch %s: %w", root, err)
		}
		w.files[file] = true
		return 1, nil
	}

	n := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.Logger.Warn().Err(err).Str("path", path).Msg("walk")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.dirs[filepath.Clean(path)] = true
		n++
		return nil
	})
	return n, err
}

// relevant reports whether an event for name concerns a watched file or
// something inside a recursively watched directory.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || w.dirs[name] || w.dirs[filepath.Dir(name)]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
