package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/mj1618/desktop-raise/internal/config"
	"github.com/mj1618/desktop-raise/internal/logutil"
	"github.com/mj1618/desktop-raise/internal/output"
	"github.com/mj1618/desktop-raise/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "desktop-raise",
	Short:        "Bring desktop windows to the foreground",
	Long:         "A CLI tool that raises and focuses application windows on X11 and Wayland sessions.",
	SilenceUsage: true,
}

var (
	// appConfig and appLogger are set by the root PersistentPreRunE.
	appConfig *config.Config
	appLogger *log.Logger
	logCloser io.Closer
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log progress to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file (size-rotated)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flags override the environment.
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			cfg.Verbose = true
		}
		if logFile, _ := rootCmd.PersistentFlags().GetString("log-file"); logFile != "" {
			cfg.LogFile = logFile
		}

		logger, closer, err := logutil.Setup(logutil.Options{Verbose: cfg.Verbose, File: cfg.LogFile})
		if err != nil {
			return err
		}
		appConfig, appLogger, logCloser = cfg, logger, closer

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}
