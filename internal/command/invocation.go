package command

import (
	"fmt"
	"io"

	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/format"
	"github.com/ecuprobe/cli/internal/log"
	"github.com/spf13/pflag"
)

// Env carries the process-level collaborators an entry point may use.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger domain.Logger
	// Runs is nil when the run history could not be opened.
	Runs      domain.RunStore
	HelpWidth int
	Version   string
	// Times shapes timestamps printed by commands.
	Times format.Layout
}

// Invocation is what an entry point receives: its parsed flags, the
// remaining positional arguments and the environment.
type Invocation struct {
	Flags *pflag.FlagSet
	Args  []string
	Env   Env
}

// Printf writes formatted output to stdout.
func (inv *Invocation) Printf(msg string, args ...any) {
	_, _ = fmt.Fprintf(inv.Env.Stdout, msg, args...)
}

// Errorf writes formatted output to stderr.
func (inv *Invocation) Errorf(msg string, args ...any) {
	_, _ = fmt.Fprintf(inv.Env.Stderr, msg, args...)
}

// Arg returns the i-th positional argument, or "" if absent.
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Log returns the environment's logger, or a logger that discards.
func (inv *Invocation) Log() domain.Logger {
	if inv.Env.Logger == nil {
		return log.NopLogger{}
	}
	return inv.Env.Logger
}
