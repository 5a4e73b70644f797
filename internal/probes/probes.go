// Package probes holds ecuprobe's built-in commands.
package probes

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/transport"
	"github.com/ecuprobe/cli/internal/ui/style"
	"github.com/ecuprobe/cli/internal/uds"
)

// DefaultTarget is the endpoint probes talk to when --target is not given.
// It matches the default listen address of serve virtual-ecu.
const DefaultTarget = "tcp-lines://127.0.0.1:13400"

type probeDependencies struct {
	Dial func(ctx context.Context, target transport.Target) (transport.Transport, error)
}

func defaultDeps() probeDependencies {
	return probeDependencies{
		Dial: transport.Dial,
	}
}

// Builtins returns the built-in descriptors in registration order.
func Builtins() []command.Descriptor {
	deps := defaultDeps()

	return []command.Descriptor{
		vinDescriptor(deps),
		pingDescriptor(deps),
		ecuResetDescriptor(deps),
		rdbiDescriptor(deps),
		wdbiDescriptor(deps),
		sendPDUDescriptor(deps),
		virtualECUDescriptor(),
		versionDescriptor(),
		runsDescriptor(),
	}
}

// addTargetFlags declares the connection flags shared by every UDS probe.
func addTargetFlags(fs *pflag.FlagSet) {
	fs.String("target", DefaultTarget, "ECU endpoint URL")
	fs.Duration("timeout", uds.DefaultTimeout, "per request timeout")
}

// connect opens a UDS client to the --target of inv. On failure it reports
// the error and returns the exit code to use.
func connect(ctx context.Context, inv *command.Invocation, deps probeDependencies) (*uds.Client, int) {
	raw, _ := inv.Flags.GetString("target")
	timeout, _ := inv.Flags.GetDuration("timeout")

	target, err := transport.ParseTarget(raw)
	if err != nil {
		return nil, usageFailure(inv, "%v", err)
	}

	inv.Log().Debug("probes: connecting to %s", target)

	tr, err := deps.Dial(ctx, target)
	if err != nil {
		return nil, failure(ctx, inv, err)
	}

	return uds.NewClient(tr, timeout), command.ExitOK
}

// failure reports err and maps it to an exit code. Cancellation wins over
// the error itself.
func failure(ctx context.Context, inv *command.Invocation, err error) int {
	if errors.Is(ctx.Err(), context.Canceled) {
		inv.Log().Info("probes: interrupted: %v", err)
		return command.ExitInterrupted
	}

	inv.Log().Error("probes: %v", err)
	inv.Errorf("%s %v\n", style.Error("error:"), err)
	return command.ExitFailure
}

func usageFailure(inv *command.Invocation, msg string, args ...any) int {
	inv.Errorf("%s %s\n", style.Error("error:"), fmt.Sprintf(msg, args...))
	return command.ExitUsage
}

// parseDID accepts "F190", "f190" or "0xF190".
func parseDID(s string) (uint16, error) {
	v, err := strconv.ParseUint(trimHexPrefix(s), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid data identifier %q", s)
	}
	return uint16(v), nil
}

// parseHex decodes a hex string, ignoring an 0x prefix, spaces and colons.
func parseHex(s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "").Replace(trimHexPrefix(s))
	b, err := hex.DecodeString(clean)
	if err != nil || len(b) == 0 {
		return nil, fmt.Errorf("invalid hex data %q", s)
	}
	return b, nil
}

func trimHexPrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
