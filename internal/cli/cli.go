package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/specialistvlad/peunion/internal/app"
)

// Environment variables that provide flag defaults. A .env file in the
// working directory is loaded into the environment by main before parsing.
const (
	EnvLogLevel  = "PEUNION_LOG_LEVEL"
	EnvLogFormat = "PEUNION_LOG_FORMAT"
	EnvOutput    = "PEUNION_OUTPUT"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("peunion", pflag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
PEunion - Validate and convert binder project files.

Usage:
  peunion [options] validate PATH...
  peunion [options] convert INPUT OUTPUT
  peunion [options] new OUTPUT

Commands:
  validate   Check .peu documents and .hcl templates. Directories are
             searched recursively. Exits with 1 if any project has errors.
  convert    Read INPUT and write OUTPUT; formats follow the extensions.
  new        Write a project with default settings.

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", envOr(EnvLogFormat, "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr(EnvLogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.StringP("output", "o", envOr(EnvOutput, app.OutputText), "Report format of validate. Options: 'text' or 'json'.")
	strictFlag := flagSet.Bool("strict", false, "Reject enum values outside the known range when reading documents.")
	forceFlag := flagSet.BoolP("force", "f", false, "Let new overwrite an existing file.")
	workersFlag := flagSet.Int("workers", app.DefaultWorkerCount, "Number of projects validated concurrently.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:     strings.ToLower(flagSet.Arg(0)),
		Args:        flagSet.Args()[1:],
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Output:      strings.ToLower(*outputFlag),
		StrictEnums: *strictFlag,
		Force:       *forceFlag,
		WorkerCount: *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
