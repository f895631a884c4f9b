package pip

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadOptionalConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadOptionalConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptionalConfig: %v", err)
	}
	if cfg.Frames.MaximumUpdatesPerSecond != 0 {
		t.Errorf("MaximumUpdatesPerSecond = %d, want 0 (unset)", cfg.Frames.MaximumUpdatesPerSecond)
	}
	if cfg.Controls.PlayPauseEnabled != nil {
		t.Error("PlayPauseEnabled should be unset")
	}
}

func TestLoadOptionalConfig_ParsesValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
frames:
  maximumUpdatesPerSecond: 15
controls:
  playPauseEnabled: false
`)

	cfg, err := LoadOptionalConfig(dir)
	if err != nil {
		t.Fatalf("LoadOptionalConfig: %v", err)
	}
	if cfg.Frames.MaximumUpdatesPerSecond != 15 {
		t.Errorf("MaximumUpdatesPerSecond = %d, want 15", cfg.Frames.MaximumUpdatesPerSecond)
	}
	if cfg.Controls.PlayPauseEnabled == nil || *cfg.Controls.PlayPauseEnabled {
		t.Error("PlayPauseEnabled should parse as false")
	}
}

func TestLoadOptionalConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "frames: [not a mapping")

	if _, err := LoadOptionalConfig(dir); err == nil {
		t.Fatal("expected a parse error for malformed YAML")
	}
}

func TestConfig_Apply(t *testing.T) {
	silentErrors(t)
	c, _ := newTestController(t)

	off := false
	cfg := &Config{
		Frames:   FramesConfig{MaximumUpdatesPerSecond: 12},
		Controls: ControlsConfig{PlayPauseEnabled: &off},
	}
	cfg.Apply(c)

	if c.Pump().Rate() != 12 {
		t.Errorf("pump rate = %d, want 12", c.Pump().Rate())
	}
	if c.PlayPauseEnabled() {
		t.Error("play/pause should be disabled by config")
	}
}

func TestConfig_ApplyZeroKeepsDefaults(t *testing.T) {
	silentErrors(t)
	c, _ := newTestController(t)

	(&Config{}).Apply(c)

	if c.Pump().Rate() != 30 {
		t.Errorf("pump rate = %d, want default 30", c.Pump().Rate())
	}
	if !c.PlayPauseEnabled() {
		t.Error("play/pause should stay enabled by default")
	}
}
