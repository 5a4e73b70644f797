package probes

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/ecuprobe/cli/internal/ui/style"
	"github.com/ecuprobe/cli/internal/uds"
)

func udsDescriptor(id, short, long string) command.Descriptor {
	return command.Descriptor{
		ID:          id,
		Category:    taxonomy.Prims,
		Subcategory: taxonomy.UDS,
		Short:       short,
		Long:        long,
		AddFlags:    addTargetFlags,
	}
}

func vinDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("vin", "request vin",
		"Read the vehicle identification number (data identifier 0xF190) and print it hex encoded.")
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runVIN(ctx, inv, deps)
	}
	return d
}

func runVIN(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	vin, err := client.ReadVIN(ctx)

	var nrc *uds.NegativeResponse
	if errors.As(err, &nrc) {
		inv.Log().Warn("probes: vin: ECU said: %v", nrc)
		inv.Errorf("%s ECU said: %v\n", style.Warning("warning:"), nrc)
		return command.ExitOK
	}
	if err != nil {
		return failure(ctx, inv, err)
	}

	inv.Printf("%s\n", hex.EncodeToString(vin))
	return command.ExitOK
}

func pingDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("ping", "send tester present",
		"Send TesterPresent requests and report the round trip time of each.")
	d.AddFlags = func(fs *pflag.FlagSet) {
		addTargetFlags(fs)
		fs.IntP("count", "c", 1, "number of requests to send")
		fs.Duration("interval", time.Second, "pause between requests")
	}
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runPing(ctx, inv, deps)
	}
	return d
}

func runPing(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	count, _ := inv.Flags.GetInt("count")
	interval, _ := inv.Flags.GetDuration("interval")
	if count < 1 {
		return usageFailure(inv, "--count must be at least 1")
	}

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	failed := 0
	for i := 1; i <= count; i++ {
		if i > 1 {
			if err := sleep(ctx, interval); err != nil {
				return command.ExitInterrupted
			}
		}

		start := time.Now()
		err := client.TesterPresent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return command.ExitInterrupted
			}
			failed++
			inv.Printf("seq=%d %s %v\n", i, style.Error("error"), err)
			continue
		}
		inv.Printf("seq=%d %s time=%s\n", i, style.Success("ok"), time.Since(start).Round(time.Microsecond))
	}

	inv.Printf("%d sent, %d answered\n", count, count-failed)
	if failed > 0 {
		return command.ExitFailure
	}
	return command.ExitOK
}

func ecuResetDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("ecu-reset", "reset the ECU",
		"Request an ECU reset. Types: 1 hard, 2 key off/on, 3 soft.")
	d.AddFlags = func(fs *pflag.FlagSet) {
		addTargetFlags(fs)
		fs.Uint8("type", uds.HardReset, "reset type")
	}
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runECUReset(ctx, inv, deps)
	}
	return d
}

func runECUReset(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	resetType, _ := inv.Flags.GetUint8("type")

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	if err := client.ECUReset(ctx, resetType); err != nil {
		return failure(ctx, inv, err)
	}

	inv.Printf("reset 0x%02X accepted\n", resetType)
	return command.ExitOK
}

func rdbiDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("rdbi", "read data by identifier",
		"Read one data identifier and print its record hex encoded.")
	d.Args = []command.ArgSpec{
		{Name: "did", Description: "data identifier in hex, e.g. F190", Required: true},
	}
	d.AddFlags = func(fs *pflag.FlagSet) {
		addTargetFlags(fs)
		fs.Bool("ascii", false, "print the record as text")
	}
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runRDBI(ctx, inv, deps)
	}
	return d
}

func runRDBI(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	did, err := parseDID(inv.Arg(0))
	if err != nil {
		return usageFailure(inv, "%v", err)
	}
	ascii, _ := inv.Flags.GetBool("ascii")

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	data, err := client.ReadDataByIdentifier(ctx, did)
	if err != nil {
		return failure(ctx, inv, err)
	}

	if ascii {
		inv.Printf("%s\n", printable(data))
	} else {
		inv.Printf("%s\n", hex.EncodeToString(data))
	}
	return command.ExitOK
}

func wdbiDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("wdbi", "write data by identifier",
		"Write a hex encoded record to one data identifier.")
	d.Args = []command.ArgSpec{
		{Name: "did", Description: "data identifier in hex", Required: true},
		{Name: "hex-data", Description: "record to write, hex encoded", Required: true},
	}
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runWDBI(ctx, inv, deps)
	}
	return d
}

func runWDBI(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	did, err := parseDID(inv.Arg(0))
	if err != nil {
		return usageFailure(inv, "%v", err)
	}
	data, err := parseHex(inv.Arg(1))
	if err != nil {
		return usageFailure(inv, "%v", err)
	}

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	if err := client.WriteDataByIdentifier(ctx, did, data); err != nil {
		return failure(ctx, inv, err)
	}

	inv.Printf("wrote %d bytes to 0x%04X\n", len(data), did)
	return command.ExitOK
}

func sendPDUDescriptor(deps probeDependencies) command.Descriptor {
	d := udsDescriptor("send-pdu", "send a raw request",
		"Send one raw UDS request and print the positive response hex encoded.")
	d.Args = []command.ArgSpec{
		{Name: "hex-pdu", Description: "request PDU, hex encoded", Required: true},
	}
	d.Main = func(ctx context.Context, inv *command.Invocation) int {
		return runSendPDU(ctx, inv, deps)
	}
	return d
}

func runSendPDU(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	pdu, err := parseHex(inv.Arg(0))
	if err != nil {
		return usageFailure(inv, "%v", err)
	}

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	resp, err := client.Request(ctx, pdu)
	if err != nil {
		return failure(ctx, inv, err)
	}

	inv.Printf("%s\n", hex.EncodeToString(resp))
	return command.ExitOK
}

// printable replaces non printable bytes with '.'.
func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c < 0x7F {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
