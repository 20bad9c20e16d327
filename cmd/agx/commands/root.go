// Package commands implements the CLI commands for agx.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/cmd"
	"github.com/thoreinstein/agx/internal/config"
	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/logging"
	"github.com/thoreinstein/agx/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configDir holds the value of the --config-dir flag.
var configDir string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// appConfig holds the loaded app settings, nil until initConfig ran.
var appConfig *config.Config

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (overrides "+paths.ConfigDirEnv+")")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("agx version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	if configDir != "" {
		os.Setenv(paths.ConfigDirEnv, configDir)
	}
	config.Init()
	appConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "agx",
	Short: "Profile-switching launcher for AI coding agents",
	Long: `agx manages named provider profiles (a LiteLLM gateway or AWS
Bedrock) and launches AI coding agents against the one you pick.

Profiles live in a single JSON document. Exactly one may be active;
'agx run' resolves the active profile, applies any per-invocation
flag overrides, validates the result, and translates it into the
environment the chosen agent understands. With no stored profiles,
resolution falls back to LITELLM_*/BEDROCK_* environment variables.`,
	Example: `  # Create a profile pointing at a LiteLLM gateway
  agx setup --name work --provider litellm --base-url https://llm.corp:4000 --api-key sk-...

  # Switch the active profile (interactive picker with no argument)
  agx use work

  # Launch claude against the active profile
  agx run claude

  # One-off launch with a different profile, without switching
  agx run claude --profile personal`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoad(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AGX_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	slog.SetDefault(slog.New(handler))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctx)

	return nil
}

// checkConfigLoad surfaces settings-file errors before any command runs.
func checkConfigLoad(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
