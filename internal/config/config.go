// Package config provides configuration management for snowcover.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	scaerrors "github.com/lsrd/snowcover/internal/errors"
	"github.com/lsrd/snowcover/internal/tool"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "snowcover.yaml"

// Config represents the snowcover configuration.
type Config struct {
	// ToolMode selects how external executables are resolved:
	// "path" (search path) or "bindir" (the configured bin directory).
	ToolMode string `yaml:"tool_mode"`

	// BinDir is the directory holding the DEM and SCA executables when
	// tool_mode is bindir. The BIN environment variable feeds this
	// field for compatibility with the upstream processing scripts.
	BinDir string `yaml:"bin_dir,omitempty"`

	// SCATool is the snow-cover classifier executable name.
	SCATool string `yaml:"sca_tool"`

	// WriteBinary requests the raw-binary side products alongside the
	// public deliverable format. The raw products feed downstream
	// processing and are not delivered to the public.
	WriteBinary bool `yaml:"write_binary"`

	// LogFile receives progress and tool output; empty means stdout.
	LogFile string `yaml:"log_file,omitempty"`

	// ToolTimeout bounds a single tool invocation. Zero disables the
	// bound, letting a hung tool hang the run.
	ToolTimeout time.Duration `yaml:"tool_timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ToolMode:    tool.ModeSearchPath.String(),
		SCATool:     "scene_based_sca",
		WriteBinary: false,
		ToolTimeout: 0,
	}
}

// Load reads configuration from path, applying it over the defaults.
// A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	mode, err := tool.ParseMode(c.ToolMode)
	if err != nil {
		return err
	}
	if mode == tool.ModeBinDir && c.BinDir == "" {
		return scaerrors.ErrConfigMissing("bin_dir")
	}
	if c.SCATool == "" {
		return scaerrors.ErrConfigMissing("sca_tool")
	}
	if c.ToolTimeout < 0 {
		return scaerrors.ErrConfigInvalid("tool_timeout", "must not be negative")
	}
	return nil
}

// Locator builds the tool locator described by the configuration.
// Validate must have passed first.
func (c *Config) Locator() tool.Locator {
	mode, _ := tool.ParseMode(c.ToolMode)
	return tool.Locator{Mode: mode, BinDir: c.BinDir}
}

// Marshal renders the configuration as YAML, for `snowcover config`.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
