package main

import (
	"path/filepath"
	"testing"

	"github.com/ecuprobe/cli/internal/config"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("COLUMNS", "")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("ECUPROBE_PLUGIN_DIR", filepath.Join(dir, "plugins"))
	t.Setenv("ECUPROBE_LOG_FILE", filepath.Join(dir, "ecuprobe.log"))
	t.Setenv("ECUPROBE_RUN_DB", config.RunDBDisabled)
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want int
	}{
		{name: "no arguments", argv: nil, want: 1},
		{name: "category only", argv: []string{"prims"}, want: 1},
		{name: "root help", argv: []string{"--help"}, want: 0},
		{name: "version", argv: []string{"version"}, want: 0},
		{name: "unknown command", argv: []string{"flash"}, want: 2},
		{name: "unknown root flag", argv: []string{"--verbose"}, want: 2},
		{name: "surplus argument", argv: []string{"version", "extra"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			require.Equal(t, tt.want, run(tt.argv))
		})
	}
}

func TestRun_MalformedColumnsStillDispatches(t *testing.T) {
	isolate(t)
	t.Setenv("COLUMNS", "wide")

	require.Equal(t, 0, run([]string{"version"}))
	require.Equal(t, 2, run([]string{"flash"}))
}
