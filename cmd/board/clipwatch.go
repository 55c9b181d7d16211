package board

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// ClipChange reports that a clip file appeared or disappeared.
type ClipChange struct {
	Path    string
	Present bool
}

// ClipWatcher watches the directories holding the board's clips.
// It only reports availability; channels keep their locators regardless.
type ClipWatcher struct {
	watcher *fsnotify.Watcher
	clips   map[string]bool // cleaned path -> watched
}

// NewClipWatcher starts watching the parent directory of every path.
// Directories that do not exist are skipped.
func NewClipWatcher(paths []string) (*ClipWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	clips := make(map[string]bool, len(paths))
	for _, p := range paths {
		clips[filepath.Clean(p)] = true
	}

	dirs := lo.Uniq(lo.Map(paths, func(p string, _ int) string {
		return filepath.Dir(filepath.Clean(p))
	}))
	watched := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("none of the clip directories exist")
	}

	return &ClipWatcher{watcher: fsw, clips: clips}, nil
}

// Next blocks until a watched clip is created, removed or renamed.
// Returns false once the watcher is closed or fails.
func (w *ClipWatcher) Next() (ClipChange, bool) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return ClipChange{}, false
			}
			path := filepath.Clean(event.Name)
			if !w.clips[path] {
				continue
			}
			switch {
			case event.Op&fsnotify.Create != 0:
				return ClipChange{Path: path, Present: true}, true
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				return ClipChange{Path: path, Present: false}, true
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return ClipChange{}, false
			}
			// Ignore errors, keep watching
		}
	}
}

// Close stops watching.
func (w *ClipWatcher) Close() error {
	return w.watcher.Close()
}

// ClipPresent reports whether a clip file exists right now.
func ClipPresent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
