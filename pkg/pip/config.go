package pip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = "pipify.yaml"

// Config represents the optional pipify.yaml configuration.
type Config struct {
	Frames   FramesConfig   `yaml:"frames"`
	Controls ControlsConfig `yaml:"controls"`
}

// FramesConfig tunes frame production.
type FramesConfig struct {
	// MaximumUpdatesPerSecond bounds the capture rate. Zero selects the
	// default of 30.
	MaximumUpdatesPerSecond int `yaml:"maximumUpdatesPerSecond,omitempty"`
}

// ControlsConfig tunes the transport controls.
type ControlsConfig struct {
	// PlayPauseEnabled controls whether platform play/pause is honored.
	// Defaults to true when unset.
	PlayPauseEnabled *bool `yaml:"playPauseEnabled,omitempty"`
}

// LoadOptionalConfig reads pipify.yaml from dir if present. A missing file
// yields the zero Config; a malformed file is an error.
func LoadOptionalConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return &cfg, nil
}

// Apply applies the configuration to a controller. Unset values keep the
// controller's defaults.
func (cfg *Config) Apply(c *Controller) {
	if cfg == nil || c == nil {
		return
	}
	if cfg.Frames.MaximumUpdatesPerSecond > 0 {
		c.pump.SetRate(cfg.Frames.MaximumUpdatesPerSecond)
	}
	if cfg.Controls.PlayPauseEnabled != nil {
		c.SetPlayPauseEnabled(*cfg.Controls.PlayPauseEnabled)
	}
}
