// Package raise brings an application window to the foreground.
//
// A raise is a short synchronous step followed by up to two goroutines that
// are not joined by the caller: one that keeps asking the window manager to
// focus the window until it succeeds or runs out of retries, and one that
// hides the window's menu bar again if showing the window revealed it.
// Their outcomes are only logged.
package raise

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mj1618/desktop-raise/internal/platform"
)

const (
	DefaultFocusRetries  = 10
	DefaultFocusDelay    = 100 * time.Millisecond
	DefaultMenuPollDelay = 10 * time.Millisecond
)

// WaitFunc pauses for d or until ctx is done, whichever comes first.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Options tunes a Raiser. Zero values select the defaults.
type Options struct {
	// SessionType returns the session type on every Raise call.
	// Defaults to platform.EnvSessionType.
	SessionType func() string

	// FocusRetries is the number of focus attempts made after the first
	// one fails. A negative value disables retries.
	FocusRetries int

	// FocusDelay separates consecutive focus attempts.
	FocusDelay time.Duration

	// MenuPollDelay separates consecutive menu visibility checks.
	MenuPollDelay time.Duration

	Logger *log.Logger
	Wait   WaitFunc
}

// Raiser raises windows. It is safe for concurrent use.
type Raiser struct {
	focuser       platform.Focuser
	sessionType   func() string
	retries       int
	focusDelay    time.Duration
	menuPollDelay time.Duration
	logger        *log.Logger
	wait          WaitFunc

	wg sync.WaitGroup
}

// New creates a Raiser that focuses windows through focuser.
func New(focuser platform.Focuser, opts Options) *Raiser {
	r := &Raiser{
		focuser:       focuser,
		sessionType:   opts.SessionType,
		retries:       opts.FocusRetries,
		focusDelay:    opts.FocusDelay,
		menuPollDelay: opts.MenuPollDelay,
		logger:        opts.Logger,
		wait:          opts.Wait,
	}
	if r.sessionType == nil {
		r.sessionType = platform.EnvSessionType
	}
	switch {
	case r.retries == 0:
		r.retries = DefaultFocusRetries
	case r.retries < 0:
		r.retries = 0
	}
	if r.focusDelay <= 0 {
		r.focusDelay = DefaultFocusDelay
	}
	if r.menuPollDelay <= 0 {
		r.menuPollDelay = DefaultMenuPollDelay
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.wait == nil {
		r.wait = sleep
	}
	return r
}

// Raise shows win and brings it to the front.
//
// In a Wayland session the window is hidden and shown again, which makes the
// compositor present it on top. Otherwise the window is shown if needed and
// its current title is handed to a background focus loop. In both cases a
// background task then hides the window's menu bar if it became visible.
//
// Only failures of win itself are returned; the background tasks report
// through the logger.
func (r *Raiser) Raise(win platform.Window) error {
	mode := platform.DisplayModeFromSessionType(r.sessionType())

	switch mode {
	case platform.DisplayCompositor:
		if err := win.Hide(); err != nil {
			return fmt.Errorf("hide window: %w", err)
		}
		if err := win.Show(); err != nil {
			return fmt.Errorf("show window: %w", err)
		}
	default:
		visible, err := win.IsVisible()
		if err != nil {
			return fmt.Errorf("query window visibility: %w", err)
		}
		if !visible {
			if err := win.Show(); err != nil {
				return fmt.Errorf("show window: %w", err)
			}
		}
		title, err := win.Title()
		if err != nil {
			return fmt.Errorf("read window title: %w", err)
		}
		r.spawn(func() { r.focusInBackground(title) })
	}

	// Showing a window on some toolkits also shows its menu bar.
	menu := win.Menu()
	r.spawn(func() { r.suppressMenu(menu) })
	return nil
}

// Wait blocks until every background task started by this Raiser has
// finished. It never cancels them.
func (r *Raiser) Wait() {
	r.wg.Wait()
}

func (r *Raiser) spawn(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
