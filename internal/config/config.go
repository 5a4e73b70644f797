// Package config reads ecuprobe's process configuration from the
// environment. There is no configuration file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ecuprobe/cli/internal/format"
	"github.com/ecuprobe/cli/internal/log"
	"github.com/ecuprobe/cli/internal/paths"
)

// Config is the process configuration. Empty path fields fall back to the
// per-user defaults from paths.
type Config struct {
	// Columns overrides the help rendering width, see HelpWidth. It is kept
	// as text so that a malformed value cannot stop start-up.
	Columns   string `env:"COLUMNS"`
	PluginDir string `env:"ECUPROBE_PLUGIN_DIR"`
	LogLevel  string `env:"ECUPROBE_LOG_LEVEL" envDefault:"warn"`
	LogFile   string `env:"ECUPROBE_LOG_FILE"`
	// RunDB is the run history database. "off" disables recording.
	RunDB string `env:"ECUPROBE_RUN_DB"`
	// DateFormat and Clock shape timestamps in tables, see format.Layout.
	DateFormat string `env:"ECUPROBE_DATE_FORMAT" envDefault:"yyyy-mm-dd"`
	Clock      string `env:"ECUPROBE_CLOCK" envDefault:"24h"`
	// NoColor disables styling when set to any value.
	NoColor string `env:"NO_COLOR"`
}

// RunDBDisabled is the RunDB value that turns run recording off.
const RunDBDisabled = "off"

// Load parses the environment and fills in default paths.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.PluginDir == "" {
		cfg.PluginDir = paths.PluginDir()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = paths.LogFilePath()
	}
	if cfg.RunDB == "" {
		cfg.RunDB = paths.RunDBPath()
	}

	return cfg, nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}

// RecordRuns reports whether run history is enabled.
func (c Config) RecordRuns() bool {
	return c.RunDB != RunDBDisabled
}

// Color reports whether styled output is allowed.
func (c Config) Color() bool {
	return c.NoColor == ""
}

// Layout returns the timestamp layout for tabular output.
func (c Config) Layout() format.Layout {
	return format.Layout{Date: c.DateFormat, Clock: c.Clock}
}

// HelpWidth returns the COLUMNS override, or zero to detect the width.
// A value that is not a non-negative integer is reported and treated as zero.
func (c Config) HelpWidth() (int, error) {
	raw := strings.TrimSpace(c.Columns)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("COLUMNS=%q is not a valid width", c.Columns)
	}
	return n, nil
}
