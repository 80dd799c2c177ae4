package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-raise/internal/output"
	"github.com/mj1618/desktop-raise/internal/platform"
	"github.com/mj1618/desktop-raise/internal/raise"
	"github.com/spf13/cobra"
)

// RaiseResult is the output of a successful raise.
type RaiseResult struct {
	OK          bool   `yaml:"ok"                     json:"ok"`
	Action      string `yaml:"action"                 json:"action"`
	Title       string `yaml:"title"                  json:"title"`
	SessionType string `yaml:"session_type,omitempty" json:"session_type,omitempty"`
	Mode        string `yaml:"mode"                   json:"mode"`
	Waited      bool   `yaml:"waited,omitempty"       json:"waited,omitempty"`
	Error       string `yaml:"error,omitempty"        json:"error,omitempty"`
}

var raiseCmd = &cobra.Command{
	Use:   "raise",
	Short: "Show a window and bring it to the foreground",
	Long: `Show the window with the given title and bring it to the front.

On Wayland (XDG_SESSION_TYPE=wayland) the window is hidden and shown again.
Otherwise it is shown if needed and focused with wmctrl, retrying while the
window manager catches up. Focus failures are logged, not returned.

Hiding and showing go through wmctrl's _NET_WM_STATE_HIDDEN state. On a native
Wayland session wmctrl only sees XWayland windows, so windows of native
Wayland clients cannot be raised.

Examples:
  desktop-raise raise --title "GlobalProtect"
  desktop-raise raise --title "GlobalProtect" --session-type x11 --verbose`,
	RunE: runRaise,
}

func init() {
	rootCmd.AddCommand(raiseCmd)
	raiseCmd.Flags().String("title", "", "Exact title of the window to raise")
	raiseCmd.Flags().String("session-type", "", "Use this session type instead of $"+platform.SessionTypeEnv)
	raiseCmd.Flags().Bool("no-wait", false, "Exit without waiting for background focus and menu tasks")
}

func runRaise(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	noWait, _ := cmd.Flags().GetBool("no-wait")

	sessionType := platform.EnvSessionType
	if cmd.Flags().Changed("session-type") {
		s, _ := cmd.Flags().GetString("session-type")
		sessionType = func() string { return s }
	}

	wm, err := windowManager()
	if err != nil {
		return err
	}

	result, err := executeRaise(wm, title, sessionType, !noWait)
	if err != nil {
		return err
	}
	return output.Print(result)
}

// executeRaise raises the window titled title. With wait set it blocks until
// the background tasks finish; a CLI process would otherwise exit first.
func executeRaise(wm platform.WindowManager, title string, sessionType func() string, wait bool) (RaiseResult, error) {
	result := RaiseResult{Action: "raise", Title: title}
	if title == "" {
		return result, fmt.Errorf("title is required")
	}

	var observed string
	opts := currentConfig().RaiseOptions()
	opts.Logger = currentLogger()
	opts.SessionType = func() string {
		observed = sessionType()
		return observed
	}

	r := raise.New(wm, opts)
	if err := r.Raise(wm.Window(title)); err != nil {
		return result, fmt.Errorf("raise %q: %w", title, err)
	}
	if wait {
		r.Wait()
	}

	result.OK = true
	result.SessionType = observed
	result.Mode = platform.DisplayModeFromSessionType(observed).String()
	result.Waited = wait
	return result, nil
}
