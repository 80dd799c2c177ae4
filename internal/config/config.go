package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mj1618/desktop-raise/internal/raise"
)

const (
	EnvFileEnvVar      = "DESKTOP_RAISE_ENV"
	FocusRetriesEnvVar = "DESKTOP_RAISE_FOCUS_RETRIES"
	FocusDelayEnvVar   = "DESKTOP_RAISE_FOCUS_DELAY_MS"
	MenuPollEnvVar     = "DESKTOP_RAISE_MENU_POLL_MS"
	LogFileEnvVar      = "DESKTOP_RAISE_LOG_FILE"
	VerboseEnvVar      = "DESKTOP_RAISE_VERBOSE"
	defaultEnvFileName = ".env"
)

type LoadOptions struct {
	// EnvPathOverride replaces the .env lookup with an explicit file.
	EnvPathOverride string
}

type Config struct {
	EnvPath       string
	FocusRetries  int
	FocusDelay    time.Duration
	MenuPollDelay time.Duration
	LogFile       string
	Verbose       bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions reads configuration from the environment after loading an
// optional .env file. Variables already set in the environment win over the
// file. Invalid numbers fall back to the defaults.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	envPath := opts.EnvPathOverride
	if envPath == "" {
		envPath = resolveEnvPath()
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && opts.EnvPathOverride != "" {
			return nil, err
		}
	}

	return &Config{
		EnvPath:       envPath,
		FocusRetries:  getEnvInt(FocusRetriesEnvVar, raise.DefaultFocusRetries, 0),
		FocusDelay:    getEnvMillis(FocusDelayEnvVar, raise.DefaultFocusDelay),
		MenuPollDelay: getEnvMillis(MenuPollEnvVar, raise.DefaultMenuPollDelay),
		LogFile:       os.Getenv(LogFileEnvVar),
		Verbose:       strings.ToLower(os.Getenv(VerboseEnvVar)) == "true",
	}, nil
}

// RaiseOptions converts the configuration into raise.Options.
func (c *Config) RaiseOptions() raise.Options {
	retries := c.FocusRetries
	if retries == 0 {
		// raise.Options treats zero as "use the default".
		retries = -1
	}
	return raise.Options{
		FocusRetries:  retries,
		FocusDelay:    c.FocusDelay,
		MenuPollDelay: c.MenuPollDelay,
	}
}

func resolveEnvPath() string {
	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeEnv := filepath.Join(filepath.Dir(execPath), defaultEnvFileName)
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}
	return ""
}

func getEnvInt(key string, defaultValue, minValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < minValue {
		return defaultValue
	}
	return n
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	ms := getEnvInt(key, -1, 1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		FocusRetries:  raise.DefaultFocusRetries,
		FocusDelay:    raise.DefaultFocusDelay,
		MenuPollDelay: raise.DefaultMenuPollDelay,
	}
}
