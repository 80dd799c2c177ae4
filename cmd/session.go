package cmd

import (
	"github.com/mj1618/desktop-raise/internal/output"
	"github.com/mj1618/desktop-raise/internal/platform"
	"github.com/spf13/cobra"
)

// SessionResult describes how raise would behave in this session.
type SessionResult struct {
	Variable    string `yaml:"variable"     json:"variable"`
	SessionType string `yaml:"session_type" json:"session_type"`
	Mode        string `yaml:"mode"         json:"mode"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the detected session type and raise strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(executeSession(platform.EnvSessionType()))
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func executeSession(sessionType string) SessionResult {
	return SessionResult{
		Variable:    platform.SessionTypeEnv,
		SessionType: sessionType,
		Mode:        platform.DisplayModeFromSessionType(sessionType).String(),
	}
}
