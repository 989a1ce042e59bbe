package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(ExitCode(err))
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// Missing files are ignored. Empty disables loading.
	EnvFile string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		if err := godotenv.Load(m.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return usageError{fmt.Errorf("failed to load %s: %w", m.EnvFile, err)}
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Help makes kong call Exit; parsing then continues, so record it.
	var exited bool
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("storyindex"),
		kong.Description("Build a static search index from a publication's articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return usageError{errors.New("no command specified. Run 'storyindex --help' to see available commands")}
	}

	kongCtx, err := parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// usageError marks errors caused by the invocation rather than the run.
type usageError struct {
	error
}

func (e usageError) Unwrap() error { return e.error }

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	var parseErr *kong.ParseError
	var usageErr usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &parseErr), errors.As(err, &usageErr):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// newLogger returns a text logger on w tagged with a fresh run identifier.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}
