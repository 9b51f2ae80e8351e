package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fsChangeMsg is sent when the notebook file changes on disk.
type fsChangeMsg struct{}

// watchNotebook creates a single-shot file system watcher for the notebook
// file. The watcher is re-armed from Update after each fsChangeMsg. Returns
// nil if the watcher cannot be created (the pad just loses live reload).
func watchNotebook(path string) tea.Cmd {
	watcher := initWatcher(path)
	if watcher == nil {
		return nil
	}
	return runWatcher(watcher, filepath.Base(path))
}

// initWatcher watches the notebook's parent directory: editors typically
// replace the file via rename, which drops a watch on the file itself.
func initWatcher(path string) *fsnotify.Watcher {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify: failed to create watcher: %v (live reload disabled)", err)
		return nil
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		log.Printf("fsnotify: failed to watch %s: %v (live reload disabled)", path, err)
		return nil
	}

	return watcher
}

// runWatcher returns a tea.Cmd that blocks until a debounced change to the
// notebook file is observed, then closes the watcher and reports it.
func runWatcher(watcher *fsnotify.Watcher, name string) tea.Cmd {
	return func() tea.Msg {
		defer watcher.Close() //nolint:errcheck // best effort
		debounceTimer := newDebounceTimer()
		defer debounceTimer.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				resetDebounceTimer(debounceTimer)

			case <-debounceTimer.C:
				return fsChangeMsg{}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("fsnotify: watcher error: %v", err)
				return nil
			}
		}
	}
}

// newDebounceTimer creates a stopped timer for debouncing change events.
func newDebounceTimer() *time.Timer {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	return timer
}

// resetDebounceTimer resets the debounce timer so bursts of writes collapse
// into one reload prompt.
func resetDebounceTimer(timer *time.Timer) {
	const debounceDuration = 100 * time.Millisecond
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}
