// Package cli parses the command line into an app configuration and a
// command to run.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/parametry/internal/app"
)

// Commands understood by the CLI.
const (
	CommandRun          = "run"
	CommandValidate     = "validate"
	CommandStatusReport = "status-report"
	CommandSnapshot     = "snapshot"
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

// Parse processes command-line arguments. It returns a populated app
// config, the selected command, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, string, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("parametry", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Parametry - A provenance-checked parameter registry and documentation graph.

Usage:
  parametry COMMAND [options] [DOCS_PATH]

Commands:
  run            Build the registry, check provenance, validate references.
  validate       Build and validate; exit non-zero if any reference is broken.
  status-report  Build and report provenance status mismatches.
  snapshot       Build and write the registry snapshot to --snapshot-out.

Arguments:
  DOCS_PATH
    Path to a single .hcl document or a directory containing .hcl documents.

Options:
`)
		flagSet.PrintDefaults()
	}

	docsFlag := flagSet.String("docs", "", "Path to the parameter documents.")
	dFlag := flagSet.String("d", "", "Path to the parameter documents (shorthand).")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent workers for one scheduler pass.")
	snapshotOutFlag := flagSet.String("snapshot-out", "", "Path for the registry snapshot JSON file.")

	if len(args) == 0 {
		flagSet.Usage()
		return nil, "", true, nil
	}

	command := args[0]
	switch command {
	case CommandRun, CommandValidate, CommandStatusReport, CommandSnapshot:
		// valid
	case "-h", "--help", "help":
		flagSet.Usage()
		return nil, "", true, nil
	default:
		return nil, "", false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, "", true, nil
		}
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *docsFlag != "" {
		path = *docsFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Documents path determined.", "path", path)

	if path == "" {
		slog.Debug("No documents path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, "", true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if command == CommandSnapshot && *snapshotOutFlag == "" {
		return nil, "", false, &ExitError{Code: 2, Message: "the snapshot command requires --snapshot-out"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DocsPath:     path,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
		SnapshotPath: *snapshotOutFlag,
	})

	if err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", command, "config", config)
	return config, command, false, nil
}
