package probes

import (
	"context"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/usage"
)

func versionDescriptor() command.Descriptor {
	return command.Descriptor{
		ID:    "version",
		Short: "print the version",
		Main:  showVersion,
	}
}

func showVersion(_ context.Context, inv *command.Invocation) int {
	inv.Printf("%s version %s\n", usage.Program, inv.Env.Version)
	return command.ExitOK
}
