// Package paths resolves the per-user locations ecuprobe reads and writes.
// Every location can be overridden through the environment; see config.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "ecuprobe"

// AppDataDir returns the configuration directory. It holds the plugin
// manifests and the log file.
//   - macOS: ~/Library/Application Support/ecuprobe
//   - Linux: $XDG_CONFIG_HOME/ecuprobe or ~/.config/ecuprobe
//   - Windows: %AppData%\ecuprobe
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appDirName)
}

// AppLocalDataDir returns the OS-appropriate local data directory, where
// the run history lives.
//   - macOS: ~/Library/Application Support/ecuprobe
//   - Linux: $XDG_DATA_HOME/ecuprobe or ~/.local/share/ecuprobe
//   - Windows: %LOCALAPPDATA%\ecuprobe
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// PluginDir returns the directory scanned for YAML plugin manifests.
func PluginDir() string {
	return filepath.Join(AppDataDir(), "plugins")
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "ecuprobe.log")
}

// RunDBPath returns the path to the run history database.
func RunDBPath() string {
	return filepath.Join(AppLocalDataDir(), "runs.db")
}
