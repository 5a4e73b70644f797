package probes

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/ecu"
	"github.com/ecuprobe/cli/internal/transport"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// invoke parses argv with d's flags and runs d's entry point.
func invoke(t *testing.T, ctx context.Context, env command.Env, d command.Descriptor, argv ...string) result {
	t.Helper()

	fs := pflag.NewFlagSet(d.ID, pflag.ContinueOnError)
	if d.AddFlags != nil {
		d.AddFlags(fs)
	}
	require.NoError(t, fs.Parse(argv))

	var stdout, stderr bytes.Buffer
	env.Stdout = &stdout
	env.Stderr = &stderr

	code := d.Main(ctx, &command.Invocation{Flags: fs, Args: fs.Args(), Env: env})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// serveECU runs e on a loopback port and returns its target URL.
func serveECU(t *testing.T, e *ecu.ECU) string {
	t.Helper()

	srv, err := ecu.Listen("127.0.0.1:0", e, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("virtual ECU did not stop")
		}
	})

	return "tcp-lines://" + srv.Addr()
}

func TestBuiltins_Valid(t *testing.T) {
	seen := make(map[string]bool)

	for _, d := range Builtins() {
		require.NoError(t, d.Validate(), d.Address())
		require.False(t, seen[d.Address()], "duplicate %s", d.Address())
		seen[d.Address()] = true
	}

	require.True(t, seen["prims uds vin"])
	require.True(t, seen["serve virtual-ecu"])
	require.True(t, seen["version"])
}

func TestParseDID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "F190", want: 0xF190},
		{in: "0xf190", want: 0xF190},
		{in: " 22 ", want: 0x22},
		{in: "10000", wantErr: true},
		{in: "zz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseHex(t *testing.T) {
	b, err := parseHex("0x22 F1:90")
	require.NoError(t, err)
	require.Equal(t, []byte{0x22, 0xF1, 0x90}, b)

	_, err = parseHex("abc")
	require.Error(t, err)

	_, err = parseHex("")
	require.Error(t, err)
}

func TestPrintable(t *testing.T) {
	require.Equal(t, "AB..z", printable([]byte{'A', 'B', 0x00, 0xFF, 'z'}))
}

func TestConnect_BadTarget(t *testing.T) {
	r := invoke(t, context.Background(), command.Env{}, vinDescriptor(defaultDeps()), "--target", "can://vcan0")

	require.Equal(t, command.ExitUsage, r.code)
	require.Contains(t, r.stderr, "error:")
}

func TestConnect_DialFailure(t *testing.T) {
	deps := probeDependencies{
		Dial: func(context.Context, transport.Target) (transport.Transport, error) {
			return nil, errors.New("connection refused")
		},
	}

	r := invoke(t, context.Background(), command.Env{}, vinDescriptor(deps))

	require.Equal(t, command.ExitFailure, r.code)
	require.Contains(t, r.stderr, "connection refused")
}

func TestConnect_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deps := probeDependencies{
		Dial: func(ctx context.Context, _ transport.Target) (transport.Transport, error) {
			return nil, ctx.Err()
		},
	}

	r := invoke(t, ctx, command.Env{}, vinDescriptor(deps))

	require.Equal(t, command.ExitInterrupted, r.code)
	require.Empty(t, r.stderr)
}

func TestSleep(t *testing.T) {
	require.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
