package wmctrl

import (
	"context"
	"errors"

	"github.com/mj1618/desktop-raise/internal/platform"
)

// Window is a handle to a window owned by another process. It is addressed
// by its exact title, so renaming the window invalidates the handle.
type Window struct {
	client *Client
	title  string
}

// IsVisible reports whether a window with this title is managed and not
// hidden. Hiding keeps the window listed, so the hidden state is read from
// _NET_WM_STATE.
func (w *Window) IsVisible() (bool, error) {
	hidden, err := w.client.IsHidden(context.Background(), w.title)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !hidden, nil
}

// Show clears the window's hidden state.
func (w *Window) Show() error {
	return w.client.setHidden(context.Background(), w.title, false)
}

// Hide sets the window's hidden state.
func (w *Window) Hide() error {
	return w.client.setHidden(context.Background(), w.title, true)
}

func (w *Window) Title() (string, error) {
	return w.title, nil
}

// Menu returns a menu that is never visible. Windows of other processes do
// not expose their toolkit menu bar to the window manager.
func (w *Window) Menu() platform.Menu {
	return noMenu{}
}

type noMenu struct{}

func (noMenu) IsVisible() (bool, error) { return false, nil }
func (noMenu) Hide() error              { return nil }
