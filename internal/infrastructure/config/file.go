package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig is the optional TOML override file. Pointer fields tell "unset"
// apart from zero values; durations are strings to keep the file readable.
type FileConfig struct {
	Title        *string  `toml:"title"`
	Scale        *int     `toml:"scale"`
	TickRate     *int     `toml:"tick_rate"`
	MaxDelta     string   `toml:"max_delta"`
	InitialScene string   `toml:"initial_scene"`
	Stage        string   `toml:"stage"`
	LogLevel     string   `toml:"log_level"`
	Volume       *float64 `toml:"volume"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.sceneloop/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sceneloop", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// ApplyFileConfig copies the values set in fc onto cfg. Fields whose CLI
// flag was set explicitly (changed) are left alone, so flags win over the file.
func ApplyFileConfig(cfg *EngineConfig, fc FileConfig, changed map[string]bool) error {
	set := func(flag string) bool { return !changed[flag] }

	if fc.Title != nil && set("title") {
		cfg.Display.Title = *fc.Title
	}
	if fc.Scale != nil && set("scale") {
		cfg.Display.Scale = *fc.Scale
	}
	if fc.TickRate != nil && set("tick-rate") {
		cfg.Loop.TickRate = *fc.TickRate
	}
	if fc.MaxDelta != "" && set("max-delta") {
		d, err := time.ParseDuration(fc.MaxDelta)
		if err != nil {
			return fmt.Errorf("max_delta: %w", err)
		}
		cfg.Loop.MaxDeltaMs = int(d / time.Millisecond)
	}
	if fc.InitialScene != "" && set("scene") {
		cfg.Scenes.Initial = fc.InitialScene
	}
	if fc.Stage != "" && set("stage") {
		cfg.Scenes.Stage = fc.Stage
	}
	if fc.LogLevel != "" && set("log-level") {
		cfg.Logging.Level = fc.LogLevel
	}
	if fc.Volume != nil && set("volume") {
		cfg.Audio.Volume = *fc.Volume
	}
	return nil
}
