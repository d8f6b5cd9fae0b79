package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type storeChangedMsg struct{}
type watchErrorMsg struct{ error }

// WatchStore reloads the list whenever the store file is rewritten, for
// example by `todoai serve` running against the same file. The directory is
// watched because saves replace the file by rename.
func (a *App) WatchStore() (func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	path, err := filepath.Abs(a.state.store.Path())
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	a.watcher = w
	a.watchPath = path
	return w.Close, nil
}

func (a *App) waitForStoreChange() tea.Cmd {
	w, path := a.watcher, a.watchPath
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Name == path && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return storeChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok || errors.Is(err, fsnotify.ErrClosed) {
					return nil
				}
				return watchErrorMsg{err}
			}
		}
	}
}
