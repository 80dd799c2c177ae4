package wmctrl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-raise/internal/model"
	"github.com/mj1618/desktop-raise/internal/platform"
)

// DefaultPath is the binary looked up on PATH when no path is configured.
const DefaultPath = "wmctrl"

// DefaultXpropPath is the xprop binary used to read window state.
const DefaultXpropPath = "xprop"

const hiddenAtom = "_NET_WM_STATE_HIDDEN"

// ErrNotFound is returned when no managed window has the requested title.
var ErrNotFound = errors.New("window not found")

// Runner runs a command to completion and returns its standard output.
// A non-zero exit status must be reported as an error.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Client implements platform.WindowManager on top of wmctrl.
type Client struct {
	path  string
	xprop string
	run   Runner
}

// NewClient creates a client for the wmctrl binary at path.
// An empty path means DefaultPath; a nil run means ExecRunner.
func NewClient(path string, run Runner) *Client {
	if path == "" {
		path = DefaultPath
	}
	if run == nil {
		run = ExecRunner
	}
	return &Client{path: path, xprop: DefaultXpropPath, run: run}
}

// FocusByTitle switches to the desktop of the window titled exactly title,
// raises it and gives it focus (wmctrl -F -a).
func (c *Client) FocusByTitle(ctx context.Context, title string) error {
	if _, err := c.run(ctx, c.path, "-F", "-a", title); err != nil {
		return fmt.Errorf("focus %q: %w", title, err)
	}
	return nil
}

// ListWindows returns the windows managed by the window manager (wmctrl -l -p).
func (c *Client) ListWindows(ctx context.Context) ([]model.Window, error) {
	out, err := c.run(ctx, c.path, "-l", "-p")
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	return ParseList(string(out))
}

// FindWindow returns the managed window titled exactly title, or ErrNotFound.
func (c *Client) FindWindow(ctx context.Context, title string) (model.Window, error) {
	windows, err := c.ListWindows(ctx)
	if err != nil {
		return model.Window{}, err
	}
	w, ok := model.FindByTitle(windows, title)
	if !ok {
		return model.Window{}, fmt.Errorf("%q: %w", title, ErrNotFound)
	}
	return w, nil
}

// Window returns a handle to the managed window titled exactly title.
func (c *Client) Window(title string) platform.Window {
	return &Window{client: c, title: title}
}

// WindowState returns the _NET_WM_STATE atoms set on the window with the
// given ID (xprop -id ID _NET_WM_STATE). A window without the property has
// no atoms.
func (c *Client) WindowState(ctx context.Context, id string) ([]string, error) {
	out, err := c.run(ctx, c.xprop, "-id", id, "_NET_WM_STATE")
	if err != nil {
		return nil, fmt.Errorf("read state of %s: %w", id, err)
	}
	return ParseWindowState(string(out)), nil
}

// IsHidden reports whether the window titled exactly title is listed and
// carries _NET_WM_STATE_HIDDEN.
func (c *Client) IsHidden(ctx context.Context, title string) (bool, error) {
	w, err := c.FindWindow(ctx, title)
	if err != nil {
		return false, err
	}
	atoms, err := c.WindowState(ctx, w.ID)
	if err != nil {
		return false, err
	}
	for _, atom := range atoms {
		if atom == hiddenAtom {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) setHidden(ctx context.Context, title string, hidden bool) error {
	action := "remove,hidden"
	if hidden {
		action = "add,hidden"
	}
	if _, err := c.run(ctx, c.path, "-F", "-r", title, "-b", action); err != nil {
		return fmt.Errorf("set %s on %q: %w", action, title, err)
	}
	return nil
}

// ParseWindowState parses xprop output such as
//
//	_NET_WM_STATE(ATOM) = _NET_WM_STATE_HIDDEN, _NET_WM_STATE_SKIP_TASKBAR
//
// into its atoms. "_NET_WM_STATE:  not found." yields none.
func ParseWindowState(out string) []string {
	_, value, ok := strings.Cut(out, "=")
	if !ok {
		return nil
	}
	var atoms []string
	for _, atom := range strings.Split(value, ",") {
		if atom = strings.TrimSpace(atom); atom != "" {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

// ParseList parses the output of `wmctrl -l -p`. Each line holds the window
// ID, desktop, PID, client host and title, separated by whitespace; the title
// is the remainder of the line and may contain spaces or be empty.
func ParseList(out string) ([]model.Window, error) {
	var windows []model.Window
	for n, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func parseLine(line string) (model.Window, error) {
	var fields [4]string
	rest := line
	for i := range fields {
		fields[i], rest = cutField(rest)
		if fields[i] == "" {
			return model.Window{}, fmt.Errorf("malformed window line %q", line)
		}
	}
	desktop, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.Window{}, fmt.Errorf("invalid desktop %q: %w", fields[1], err)
	}
	pid, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Window{}, fmt.Errorf("invalid pid %q: %w", fields[2], err)
	}
	return model.Window{
		ID:      fields[0],
		Desktop: desktop,
		PID:     pid,
		Host:    fields[3],
		Title:   strings.TrimRight(rest, "\r"),
		Sticky:  desktop == model.StickyDesktop,
	}, nil
}

// cutField splits off the next whitespace-delimited field. The single
// separator after the field is consumed so rest keeps any leading spaces
// that belong to a title.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
