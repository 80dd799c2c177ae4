package platform

import (
	"fmt"
	"os"
)

// SessionTypeEnv is the environment variable describing the graphical session.
const SessionTypeEnv = "XDG_SESSION_TYPE"

// DisplayMode says who owns window stacking in the current session.
type DisplayMode int

const (
	// DisplayWindowManager is an X11-style session where an external window
	// manager can be asked to focus a window.
	DisplayWindowManager DisplayMode = iota
	// DisplayCompositor is a Wayland session. Clients cannot focus windows
	// directly, so raising is done by toggling visibility.
	DisplayCompositor
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayWindowManager:
		return "window-manager"
	case DisplayCompositor:
		return "compositor"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// DisplayModeFromSessionType classifies a session type value.
// Only the exact string "wayland" selects DisplayCompositor.
func DisplayModeFromSessionType(sessionType string) DisplayMode {
	if sessionType == "wayland" {
		return DisplayCompositor
	}
	return DisplayWindowManager
}

// EnvSessionType reads the session type from the process environment.
func EnvSessionType() string {
	return os.Getenv(SessionTypeEnv)
}
