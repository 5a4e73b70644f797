package probes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/ecu"
	"github.com/ecuprobe/cli/internal/plugins"
)

func TestScanIdentifiers_LinkedPlugin(t *testing.T) {
	entries, err := plugins.LinkedManifest().Entries(plugins.Group)
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if e.Name != "ecuprobe.scan-identifiers" {
			continue
		}
		found = true

		d, err := e.Resolve()
		require.NoError(t, err)
		require.Equal(t, "scan uds identifiers", d.Address())
	}
	require.True(t, found)
}

func TestScanIdentifiers(t *testing.T) {
	target := serveECU(t, ecu.NewWithDIDs(map[uint16][]byte{
		0x0101: []byte("AB"),
		0x0103: {0x01, 0x02},
		0x0200: {0xFF},
	}))

	r := invoke(t, context.Background(), command.Env{}, scanIdentifiersDescriptor(defaultDeps()),
		"--target", target, "--start", "0100", "--end", "0104")

	require.Equal(t, command.ExitOK, r.code)
	require.Contains(t, r.stdout, "0101")
	require.Contains(t, r.stdout, "4142")
	require.Contains(t, r.stdout, "0103")
	require.NotContains(t, r.stdout, "0100")
	require.NotContains(t, r.stdout, "0200")
}

func TestScanIdentifiers_NothingFound(t *testing.T) {
	target := serveECU(t, ecu.NewWithDIDs(map[uint16][]byte{}))

	r := invoke(t, context.Background(), command.Env{}, scanIdentifiersDescriptor(defaultDeps()),
		"--target", target, "--start", "0", "--end", "3")

	require.Equal(t, command.ExitOK, r.code)
	require.Equal(t, "no identifiers found\n", r.stdout)
}

func TestScanIdentifiers_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{name: "bad start", argv: []string{"--start", "xyz"}},
		{name: "bad end", argv: []string{"--end", "12345"}},
		{name: "end below start", argv: []string{"--start", "F1FF", "--end", "F180"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := invoke(t, context.Background(), command.Env{}, scanIdentifiersDescriptor(defaultDeps()), tt.argv...)
			require.Equal(t, command.ExitUsage, r.code)
		})
	}
}

func TestScanIdentifiers_UpperBoundary(t *testing.T) {
	target := serveECU(t, ecu.NewWithDIDs(map[uint16][]byte{0xFFFF: {0x01}}))

	r := invoke(t, context.Background(), command.Env{}, scanIdentifiersDescriptor(defaultDeps()),
		"--target", target, "--start", "FFFE", "--end", "FFFF")

	require.Equal(t, command.ExitOK, r.code)
	require.Contains(t, r.stdout, "FFFF")
}
