package tui

import (
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/sora-blue/GreatCorpSimulator/pkg/store"
)

// LedgerChangedMsg is sent when a stored blob changes on disk, e.g. another
// session recorded a run.
type LedgerChangedMsg struct{}

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// watchDebounce collapses the burst of events one atomic write produces.
const watchDebounce = 200 * time.Millisecond

// StartWatcher watches the data directory for blob changes and sends
// LedgerChangedMsg. The returned func stops the watcher.
func StartWatcher(root string, program Sender) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isBlob(event.Name) {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, func() {
					program.Send(LedgerChangedMsg{})
				})

			case <-watcher.Errors:
				// Ignore watcher errors silently

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

// isBlob skips the temp files the store writes before renaming into place.
func isBlob(path string) bool {
	name := filepath.Base(path)
	return filepath.Ext(name) == store.Ext && !strings.HasPrefix(name, ".")
}
