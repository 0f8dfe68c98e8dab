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

	"github.com/vk/vomix/internal/app"
	"github.com/vk/vomix/internal/cli"
	"github.com/vk/vomix/internal/runner"
)

// main is the entrypoint for the vomix application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode reports err on w and returns the process exit status for it. A
// failed engine run exits with the engine's own status.
func exitCode(err error, w io.Writer) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(w, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(w, "Error:", err)
	var subErr *runner.SubprocessError
	if errors.As(err, &subErr) && subErr.Code > 0 {
		return subErr.Code
	}
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	// A malformed module catalogue panics while the registry is built; turn
	// that into an error so main can exit cleanly.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	reg := app.NewRegistry()
	appConfig, shouldExit, err := cli.Parse(args, outW, reg)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	vomixApp := app.NewApp(outW, errW, appConfig, reg)
	return vomixApp.Run(ctx, appConfig)
}
