// Command purefuncgen checks and encapsulates functions marked
// //purefunc:pure outside of the go vet driver.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

var version = "dev"

// errIssues means the command ran and found problems it already printed.
var errIssues = errors.New("issues found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := newApp(stdin, stdout, stderr).RunContext(ctx, args)
	if err == nil {
		return 0
	}

	if !errors.Is(err, errIssues) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}

	return 1
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "purefuncgen",
		Usage:     "check and encapsulate functions marked //purefunc:pure",
		Version:   version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// Errors are returned to run, which owns the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: DIR/.purefunc.toml)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns, replacing the configured list",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns, in addition to the configured list",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Files processed at once (0 = number of CPUs)",
			},
			&cli.BoolFlag{
				Name:  "no-gitignore",
				Usage: "Do not skip files matched by .gitignore",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log per-file progress",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "expand",
				Usage:     "Expand a single declaration read from FILE or stdin",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "args",
						Usage: "Directive arguments to check (any non-empty value is rejected)",
					},
				},
				Action: expandCommand,
			},
			{
				Name:      "check",
				Usage:     "Report rejected directives and functions that are not encapsulated",
				ArgsUsage: "[DIR]",
				Action:    checkCommand,
			},
			{
				Name:      "rewrite",
				Usage:     "Encapsulate annotated functions; prints a diff unless --write",
				ArgsUsage: "[DIR]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "write",
						Aliases: []string{"w"},
						Usage:   "Write results to the source files",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Keep running and rewrite files as they change",
					},
				},
				Action: rewriteCommand,
			},
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
