package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/parametry/internal/app"
	"github.com/vk/parametry/internal/cli"
	"github.com/vk/parametry/internal/docload"
	"github.com/vk/parametry/internal/xref"
)

// main is the entrypoint for the parametry application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, command, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "A critical startup error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	loader := docload.NewLoader()
	parametryApp := app.NewApp(outW, appConfig, loader)
	ctx := context.Background()

	if err := parametryApp.Build(ctx); err != nil {
		return err
	}

	switch command {
	case cli.CommandSnapshot:
		return parametryApp.WriteSnapshot()

	case cli.CommandStatusReport:
		result, err := parametryApp.CheckStatus(ctx)
		if err != nil {
			return err
		}
		for _, m := range result.Mismatches {
			fmt.Fprintf(outW, "status mismatch: %s claimed %q but ancestry implies %q\n", m.Path, m.Claimed, m.Effective)
		}
		for _, p := range result.UndocumentedLeaves {
			fmt.Fprintf(outW, "warning: %s claims 'derived' but documents no inputs\n", p)
		}
		if !result.OK() {
			return &cli.ExitError{Code: 4, Message: fmt.Sprintf("%d status mismatch(es) found", len(result.Mismatches))}
		}
		return nil

	case cli.CommandValidate:
		report, err := parametryApp.Validate(ctx, xref.DefaultOptions())
		if err != nil {
			return err
		}
		if err := report.Write(outW); err != nil {
			return err
		}
		if report.ErrorCount() > 0 {
			return &cli.ExitError{Code: 3, Message: fmt.Sprintf("%d validation error(s) found", report.ErrorCount())}
		}
		return nil

	default: // run
		result, err := parametryApp.CheckStatus(ctx)
		if err != nil {
			return err
		}
		for _, m := range result.Mismatches {
			fmt.Fprintf(outW, "status mismatch: %s claimed %q but ancestry implies %q\n", m.Path, m.Claimed, m.Effective)
		}
		report, err := parametryApp.Validate(ctx, xref.DefaultOptions())
		if err != nil {
			return err
		}
		if err := report.Write(outW); err != nil {
			return err
		}
		if err := parametryApp.WriteSnapshot(); err != nil {
			return err
		}
		if !result.OK() {
			return &cli.ExitError{Code: 4, Message: fmt.Sprintf("%d status mismatch(es) found", len(result.Mismatches))}
		}
		if report.ErrorCount() > 0 {
			return &cli.ExitError{Code: 3, Message: fmt.Sprintf("%d validation error(s) found", report.ErrorCount())}
		}
		return nil
	}
}
