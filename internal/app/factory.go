// Package app wires ecuprobe's configuration, logger, run history and
// command tree together and runs one invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/config"
	"github.com/ecuprobe/cli/internal/dispatchers"
	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/log"
	"github.com/ecuprobe/cli/internal/plugins"
	"github.com/ecuprobe/cli/internal/probes"
	"github.com/ecuprobe/cli/internal/registry"
	"github.com/ecuprobe/cli/internal/store"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/ecuprobe/cli/internal/ui/style"
	"github.com/ecuprobe/cli/internal/usage"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

// Options configures the application factory.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// StyleEnabled turns on colored output. It is ANDed with the NO_COLOR
	// setting of the config.
	StyleEnabled bool

	// Builtins replaces probes.Builtins when non-nil.
	Builtins []command.Descriptor
	// Manifest replaces plugin discovery when non-nil. The default is the
	// linked plugins followed by the manifests in the config's plugin dir.
	Manifest plugins.Manifest
}

// Application is a fully registered command tree plus its collaborators.
type Application struct {
	Config config.Config
	Logger domain.Logger
	// Runs is nil when run recording is off or the store failed to open.
	Runs    domain.RunStore
	Root    *dispatchers.DispatchNode
	Skipped []registry.Skipped

	helpWidth int
	stdout    io.Writer
	stderr    io.Writer
}

// New creates an Application with all dependencies wired up. Errors are
// configuration errors: an invalid taxonomy, an invalid built-in or a
// built-in that cannot be bound into the tree.
func New(ctx context.Context, cfg config.Config, opts Options) (*Application, error) {
	style.Init(opts.StyleEnabled && cfg.Color())

	a := &Application{
		Config: cfg,
		Logger: newLogger(cfg),
		stdout: opts.Stdout,
		stderr: opts.Stderr,
	}

	width, err := cfg.HelpWidth()
	if err != nil {
		a.Logger.Warn("app: ignoring %v, detecting width", err)
	}
	a.helpWidth = width

	if cfg.RecordRuns() {
		s, err := store.Open(ctx, cfg.RunDB)
		if err != nil {
			a.Logger.Warn("app: run history disabled: %v", err)
		} else {
			a.Runs = s
		}
	}

	builtins := opts.Builtins
	if builtins == nil {
		builtins = probes.Builtins()
	}

	manifest := opts.Manifest
	if manifest == nil {
		manifest = plugins.Multi{
			plugins.LinkedManifest(),
			plugins.Dir{Path: cfg.PluginDir},
		}
	}

	tax := taxonomy.Default()

	res, err := registry.Loader{
		Taxonomy: tax,
		Builtins: builtins,
		Manifest: manifest,
		Logger:   a.Logger,
	}.Load()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Skipped = res.Skipped

	a.Root = dispatchers.BuildTree(tax)
	if err := dispatchers.Register(a.Root, res.Registry); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register commands: %w", err)
	}

	return a, nil
}

func newLogger(cfg config.Config) domain.Logger {
	if cfg.LogFile == "" {
		return log.NopLogger{}
	}

	l, err := log.New(cfg.LogFile, cfg.Level())
	if err != nil {
		return log.NopLogger{}
	}
	return l
}

// Env returns the environment handed to entry points.
func (a *Application) Env() command.Env {
	return command.Env{
		Stdout:    a.stdout,
		Stderr:    a.stderr,
		Logger:    a.Logger,
		Runs:      a.Runs,
		HelpWidth: a.helpWidth,
		Version:   Version,
		Times:     a.Config.Layout(),
	}
}

// Run dispatches argv (without the program name) and returns the exit code.
// Only invocations that reach a command are recorded in the run history.
func (a *Application) Run(ctx context.Context, argv []string) int {
	res, err := dispatchers.Dispatch(a.Root, argv)
	if err != nil {
		return a.reportError(err)
	}

	if res.State != dispatchers.Resolved {
		return res.Run(ctx, a.Env())
	}

	a.Logger.Debug("app: running %q", res.Node.CommandPath())

	id := a.startRun(ctx, res.Node, argv)
	code := res.Run(ctx, a.Env())
	a.finishRun(ctx, id, code)

	a.Logger.Debug("app: %q exited %d", res.Node.CommandPath(), code)
	return code
}

func (a *Application) reportError(err error) int {
	var ue *usage.Error
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintln(a.stderr, ue.Error())
		if ue.Usage != "" {
			_, _ = fmt.Fprintf(a.stderr, "\nusage: %s\n", ue.Usage)
		}
		return ue.GetExitCode()
	}

	_, _ = fmt.Fprintf(a.stderr, "%s: %v\n", usage.Program, err)
	return command.ExitFailure
}

// startRun records the run and returns its id, or "" if nothing was recorded.
// Each internal node consumes exactly one token, so the tokens after the
// node's depth are the command's own flags and arguments.
func (a *Application) startRun(ctx context.Context, node *dispatchers.DispatchNode, argv []string) string {
	if a.Runs == nil {
		return ""
	}

	depth := len(node.Path) - 1
	args := append([]string(nil), argv[min(depth, len(argv)):]...)

	run, err := a.Runs.Start(ctx, domain.Run{Command: node.CommandPath(), Args: args})
	if err != nil {
		a.Logger.Warn("app: record run: %v", err)
		return ""
	}
	return run.ID
}

func (a *Application) finishRun(ctx context.Context, id string, code int) {
	if id == "" {
		return
	}

	// The command may have been interrupted; the exit code is still recorded.
	if err := a.Runs.Finish(context.WithoutCancel(ctx), id, code); err != nil {
		a.Logger.Warn("app: record exit code: %v", err)
	}
}

// Close releases the run store and the log file.
func (a *Application) Close() error {
	var errs []error

	if a.Runs != nil {
		errs = append(errs, a.Runs.Close())
	}
	if a.Logger != nil {
		errs = append(errs, a.Logger.Close())
	}

	return errors.Join(errs...)
}
