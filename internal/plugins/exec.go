package plugins

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/spf13/pflag"
)

func (c manifestCommand) descriptor(baseDir string) (command.Descriptor, error) {
	if c.Exec == "" {
		return command.Descriptor{}, errors.New("exec is required")
	}

	path := c.Exec
	if !filepath.IsAbs(path) && filepath.Base(path) != path {
		path = filepath.Join(baseDir, path)
	}

	if err := validateFlags(c.Flags); err != nil {
		return command.Descriptor{}, err
	}

	args := make([]command.ArgSpec, 0, len(c.Args))
	for _, a := range c.Args {
		if a.Name == "" {
			return command.Descriptor{}, errors.New("argument without name")
		}
		args = append(args, command.ArgSpec{Name: a.Name, Description: a.Description, Required: a.Required})
	}

	flags := c.Flags
	return command.Descriptor{
		ID:          c.ID,
		Category:    c.Category,
		Subcategory: c.Subcategory,
		Short:       c.ShortHelp,
		Long:        c.LongHelp,
		Args:        args,
		AddFlags: func(fs *pflag.FlagSet) {
			for _, f := range flags {
				declareFlag(fs, f)
			}
		},
		Main: execMain(path, flags),
	}, nil
}

func validateFlags(flags []manifestFlag) error {
	names := make(map[string]bool, len(flags))
	shorts := make(map[string]bool, len(flags))

	for _, f := range flags {
		if f.Name == "" {
			return errors.New("flag without name")
		}
		if f.Name == "help" || f.Shorthand == "h" {
			return fmt.Errorf("flag %q: help flag is reserved", f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("flag %q declared twice", f.Name)
		}
		names[f.Name] = true

		if len(f.Shorthand) > 1 {
			return fmt.Errorf("flag %q: shorthand %q must be one letter", f.Name, f.Shorthand)
		}
		if f.Shorthand != "" {
			if shorts[f.Shorthand] {
				return fmt.Errorf("flag %q: shorthand %q declared twice", f.Name, f.Shorthand)
			}
			shorts[f.Shorthand] = true
		}

		if err := checkDefault(f); err != nil {
			return fmt.Errorf("flag %q: %w", f.Name, err)
		}
	}

	return nil
}

func checkDefault(f manifestFlag) error {
	if f.Default == "" {
		switch f.Type {
		case "", "string", "bool", "int", "duration":
			return nil
		}
	}

	var err error
	switch f.Type {
	case "", "string":
	case "bool":
		_, err = strconv.ParseBool(f.Default)
	case "int":
		_, err = strconv.Atoi(f.Default)
	case "duration":
		_, err = time.ParseDuration(f.Default)
	default:
		return fmt.Errorf("unsupported type %q", f.Type)
	}
	if err != nil {
		return fmt.Errorf("bad default %q: %w", f.Default, err)
	}
	return nil
}

// declareFlag assumes f passed validateFlags.
func declareFlag(fs *pflag.FlagSet, f manifestFlag) {
	switch f.Type {
	case "bool":
		v, _ := strconv.ParseBool(f.Default)
		fs.BoolP(f.Name, f.Shorthand, v, f.Usage)
	case "int":
		v, _ := strconv.Atoi(f.Default)
		fs.IntP(f.Name, f.Shorthand, v, f.Usage)
	case "duration":
		v, _ := time.ParseDuration(f.Default)
		fs.DurationP(f.Name, f.Shorthand, v, f.Usage)
	default:
		fs.StringP(f.Name, f.Shorthand, f.Default, f.Usage)
	}
}

// execMain forwards the flags that were set and the positional arguments
// to the external executable and returns its exit status.
func execMain(path string, flags []manifestFlag) command.MainFunc {
	return func(ctx context.Context, inv *command.Invocation) int {
		argv := forwardedArgs(inv.Flags, flags, inv.Args)

		cmd := exec.CommandContext(ctx, path, argv...)
		cmd.Stdout = inv.Env.Stdout
		cmd.Stderr = inv.Env.Stderr

		inv.Log().Debug("plugins: exec %s %v", path, argv)

		err := cmd.Run()
		if err == nil {
			return command.ExitOK
		}

		if ctx.Err() != nil {
			return command.ExitInterrupted
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code >= 0 {
				return code
			}
			return signalExit(inv, path, exitErr)
		}

		inv.Errorf("%s: %v\n", filepath.Base(path), err)
		inv.Log().Error("plugins: exec %s: %v", path, err)
		return command.ExitFailure
	}
}

// signalExit reports a plugin killed by a signal and maps it to the
// shell convention 128+signal.
func signalExit(inv *command.Invocation, path string, exitErr *exec.ExitError) int {
	inv.Errorf("%s: %v\n", filepath.Base(path), exitErr)
	inv.Log().Error("plugins: exec %s: %v", path, exitErr)

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return command.ExitFailure
}

// forwardedArgs renders the set flags as --name=value pairs followed by
// "--" and the positionals, so a positional starting with a dash is not
// read as a flag by the plugin.
func forwardedArgs(fs *pflag.FlagSet, flags []manifestFlag, positional []string) []string {
	var argv []string

	if fs != nil {
		for _, f := range flags {
			pf := fs.Lookup(f.Name)
			if pf == nil || !pf.Changed {
				continue
			}
			argv = append(argv, "--"+f.Name+"="+pf.Value.String())
		}
	}

	if len(positional) == 0 {
		return argv
	}
	argv = append(argv, "--")
	return append(argv, positional...)
}
