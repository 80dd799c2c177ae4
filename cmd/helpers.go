package cmd

import (
	"fmt"
	"log"

	"github.com/mj1618/desktop-raise/internal/config"
	"github.com/mj1618/desktop-raise/internal/platform"
)

// newProvider is swapped out in tests.
var newProvider = platform.NewProvider

// windowManager returns the window manager of the current platform.
func windowManager() (platform.WindowManager, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	if provider.WindowManager == nil {
		return nil, fmt.Errorf("window management not available on this platform")
	}
	return provider.WindowManager, nil
}

// currentConfig returns the loaded configuration, or the defaults when the
// root command has not run (MCP handlers in tests, for example).
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

func currentLogger() *log.Logger {
	if appLogger == nil {
		return log.Default()
	}
	return appLogger
}

// Parameter extraction helpers for MCP tool arguments

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
