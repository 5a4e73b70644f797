package paths

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppDataDir_EndsWithAppName(t *testing.T) {
	dir := AppDataDir()
	require.NotEqual(t, ".", dir)
	require.Equal(t, "ecuprobe", filepath.Base(dir))
	require.True(t, filepath.IsAbs(dir), "AppDataDir should be absolute: %s", dir)
}

func TestAppDataDir_WithXDGConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom/config")
	require.Equal(t, "/tmp/custom/config/ecuprobe", AppDataDir())
}

func TestAppLocalDataDir_WithXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_DATA_HOME", "/tmp/custom/data")
	require.Equal(t, "/tmp/custom/data/ecuprobe", AppLocalDataDir())
}

func TestAppLocalDataDir_WithoutXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_DATA_HOME", "")

	dir := AppLocalDataDir()
	require.True(t, strings.Contains(dir, ".local/share"),
		"AppLocalDataDir should use .local/share when XDG_DATA_HOME is not set: %s", dir)
}

func TestDerivedPaths(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		parent string
		base   string
	}{
		{name: "plugins", path: PluginDir(), parent: AppDataDir(), base: "plugins"},
		{name: "log", path: LogFilePath(), parent: AppDataDir(), base: "ecuprobe.log"},
		{name: "runs", path: RunDBPath(), parent: AppLocalDataDir(), base: "runs.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.parent, filepath.Dir(tt.path))
			require.Equal(t, tt.base, filepath.Base(tt.path))
			require.NotContains(t, tt.path, "..")
		})
	}
}
