package cmd

import (
	"context"
	"time"

	"github.com/mj1618/desktop-raise/internal/model"
	"github.com/mj1618/desktop-raise/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows managed by the window manager",
	Long:  "List managed windows with their ID, desktop, PID, host, and title.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Filter windows by title substring (case-insensitive)")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
}

func runList(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	pid, _ := cmd.Flags().GetInt("pid")

	wm, err := windowManager()
	if err != nil {
		return err
	}

	result, err := executeList(cmd.Context(), wm.ListWindows, title, pid)
	if err != nil {
		return err
	}
	return output.Print(result)
}

// executeList lists windows through list and applies the filters.
func executeList(ctx context.Context, list func(context.Context) ([]model.Window, error), title string, pid int) (output.ListResult, error) {
	windows, err := list(ctx)
	if err != nil {
		return output.ListResult{}, err
	}
	windows = model.FilterWindows(windows, title, pid)
	if windows == nil {
		windows = []model.Window{}
	}
	return output.ListResult{TS: time.Now().Unix(), Windows: windows}, nil
}
