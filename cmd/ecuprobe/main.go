package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecuprobe/cli/internal/app"
	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/config"
	"github.com/ecuprobe/cli/internal/ui"
	"github.com/ecuprobe/cli/internal/usage"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: configuration: %v\n", usage.Program, err)
		return command.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		StyleEnabled: ui.IsTerminal(os.Stdout),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", usage.Program, err)
		return command.ExitFailure
	}
	defer func() { _ = a.Close() }()

	return a.Run(ctx, argv)
}
