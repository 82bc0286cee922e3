package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"squeeze/internal/services"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and maps the outcome to a process exit code.
func run(parent context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	code := services.ExitCode(err)
	switch {
	case err == nil:
	case code == services.ExitInterrupted:
		fmt.Fprintln(stderr, "Interrupted")
	case errors.Is(err, context.Canceled):
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return code
}
