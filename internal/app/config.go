package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandValidate = "validate"
	CommandConvert  = "convert"
	CommandNew      = "new"
)

// Report formats for the validate command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	Args    []string

	LogFormat   string
	LogLevel    string
	Output      string
	StrictEnums bool
	Force       bool // overwrite existing files in new
	WorkerCount int  // projects validated concurrently
}

// DefaultWorkerCount is used when Config.WorkerCount is not positive.
const DefaultWorkerCount = 10

// NewConfig checks that cfg names a known command with the right number of
// arguments and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandValidate:
		if len(cfg.Args) == 0 {
			return nil, errors.New("validate requires at least one path")
		}
	case CommandConvert:
		if len(cfg.Args) != 2 {
			return nil, fmt.Errorf("convert requires an input and an output path, got %d argument(s)", len(cfg.Args))
		}
	case CommandNew:
		if len(cfg.Args) != 1 {
			return nil, fmt.Errorf("new requires exactly one output path, got %d argument(s)", len(cfg.Args))
		}
	case "":
		return nil, errors.New("a command is required")
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputJSON:
	default:
		return nil, fmt.Errorf("invalid output %q: must be %q or %q", cfg.Output, OutputText, OutputJSON)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}

	cfg.Args = append([]string(nil), cfg.Args...)
	return &cfg, nil
}
