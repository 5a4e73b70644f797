package probes

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/ecu"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/ecuprobe/cli/internal/ui/style"
)

func virtualECUDescriptor() command.Descriptor {
	return command.Descriptor{
		ID:       "virtual-ecu",
		Category: taxonomy.Serve,
		Short:    "run a virtual UDS ECU",
		Long: "Serve a simulated ECU over the tcp-lines transport until interrupted. " +
			"It answers ReadDataByIdentifier, WriteDataByIdentifier, ECUReset, " +
			"TesterPresent and DiagnosticSessionControl.",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.String("listen", "127.0.0.1:13400", "address to listen on")
		},
		Main: runVirtualECU,
	}
}

func runVirtualECU(ctx context.Context, inv *command.Invocation) int {
	addr, _ := inv.Flags.GetString("listen")

	srv, err := ecu.Listen(addr, ecu.New(), inv.Log())
	if err != nil {
		return failure(ctx, inv, err)
	}

	inv.Printf("%s virtual ECU on tcp-lines://%s\n", style.Success("serving"), srv.Addr())

	if err := srv.Serve(ctx); err != nil {
		return failure(ctx, inv, err)
	}

	if ctx.Err() != nil {
		return command.ExitInterrupted
	}
	return command.ExitOK
}
