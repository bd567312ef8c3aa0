// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/taskflow/internal/ui"
)

// Default values.
const (
	DefaultDataFile  = "data/tasks.csv"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	appName        = "taskflow"
	userConfigName = "config.toml"
)

// projectConfigNames are looked up in the working directory, first match wins.
var projectConfigNames = []string{"taskflow.toml", ".taskflow.toml"}

// Config holds the full configuration for taskflow.
type Config struct {
	// Backing file for tasks. Relative paths resolve against the working dir.
	DataFile string `toml:"data_file"`

	// Output
	Theme   string `toml:"theme"`
	NoColor bool   `toml:"no_color"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/taskflow/config.toml)
// 3. Project config file (taskflow.toml or .taskflow.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Remaining positional arguments are left in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadConfigFile decodes TOML on top of the current values.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appName, userConfigName)
	if fileExists(p) {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKFLOW_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TASKFLOW_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKFLOW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKFLOW_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	// https://no-color.org: any non-empty value disables color
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "path of the task file")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: classic, neon or mono")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or logfmt")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	return fs.Parse(args)
}

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("data file path is empty")
	}
	if !ui.IsTheme(cfg.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", cfg.Theme, strings.Join(ui.ThemeNames, ", "))
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}
	cfg.DataFile = expandPath(cfg.DataFile)
	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.WorkDir, cfg.DataFile)
	}
	return nil
}

// expandPath replaces a leading ~ with the home directory.
func expandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
