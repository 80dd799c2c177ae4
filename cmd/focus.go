package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mj1618/desktop-raise/internal/output"
	"github.com/mj1618/desktop-raise/internal/platform"
	"github.com/mj1618/desktop-raise/internal/raise"
	"github.com/spf13/cobra"
)

// FocusResult is the output of a focus request.
type FocusResult struct {
	OK       bool   `yaml:"ok"              json:"ok"`
	Action   string `yaml:"action"          json:"action"`
	Title    string `yaml:"title"           json:"title"`
	Attempts int    `yaml:"attempts"        json:"attempts"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Focus a window by title, retrying until the window manager accepts",
	Long: `Ask the window manager (wmctrl -F -a) to focus the window with the given
title. Failed attempts are retried after a fixed delay until the retry budget
is spent. Unlike raise, this waits for the outcome and exits non-zero on
failure.`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().String("title", "", "Exact title of the window to focus")
	focusCmd.Flags().Int("retries", -1, "Retries after the first attempt (default from config)")
	focusCmd.Flags().Duration("delay", 0, "Delay between attempts (default from config)")
}

func runFocus(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	retries, _ := cmd.Flags().GetInt("retries")
	delay, _ := cmd.Flags().GetDuration("delay")

	wm, err := windowManager()
	if err != nil {
		return err
	}

	result, err := executeFocus(cmd.Context(), wm, title, retries, delay)
	if err != nil {
		return err
	}
	return output.Print(result)
}

// executeFocus runs the focus retry loop and waits for its outcome.
// A negative retries or zero delay selects the configured value.
func executeFocus(ctx context.Context, focuser platform.Focuser, title string, retries int, delay time.Duration) (FocusResult, error) {
	result := FocusResult{Action: "focus", Title: title}
	if title == "" {
		return result, fmt.Errorf("title is required")
	}

	opts := currentConfig().RaiseOptions()
	opts.Logger = currentLogger()
	switch {
	case retries == 0:
		opts.FocusRetries = -1
	case retries > 0:
		opts.FocusRetries = retries
	}
	if delay > 0 {
		opts.FocusDelay = delay
	}

	attempts, err := raise.New(focuser, opts).FocusWithRetry(ctx, title)
	result.Attempts = attempts
	if err != nil {
		return result, err
	}
	result.OK = true
	return result, nil
}
