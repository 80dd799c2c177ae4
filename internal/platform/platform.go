package platform

import (
	"context"

	"github.com/mj1618/desktop-raise/internal/model"
)

// Window is a handle to a single application window.
// Implementations must tolerate concurrent calls; the raise routine
// performs no locking of its own.
type Window interface {
	IsVisible() (bool, error)
	Show() error
	Hide() error
	Title() (string, error)

	// Menu returns the window's menu bar handle. It must never be nil.
	Menu() Menu
}

// Menu is a handle to a window's menu bar.
type Menu interface {
	IsVisible() (bool, error)
	Hide() error
}

// Focuser asks the host window manager to focus a window.
type Focuser interface {
	// FocusByTitle makes a single attempt to focus the window whose title
	// matches exactly. Any failure to run the request is returned.
	FocusByTitle(ctx context.Context, title string) error
}

// WindowManager lists, focuses and hands out windows managed by the host.
type WindowManager interface {
	Focuser

	// ListWindows returns all managed windows.
	ListWindows(ctx context.Context) ([]model.Window, error)

	// Window returns a handle to the managed window with the given title.
	Window(title string) Window
}
