package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings are the player preferences the options screen edits.
type Settings struct {
	Volume  float64 `toml:"volume"`
	ShowFPS bool    `toml:"show_fps"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{Volume: 0.5}
}

// DefaultSettingsPath returns the settings file under the user config dir.
func DefaultSettingsPath() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "sceneloop", "settings.toml")
	}
	return "settings.toml"
}

// LoadSettings reads settings from path. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes settings to path, creating the directory if needed.
// The file is written to a temporary name first and renamed into place.
func SaveSettings(path string, s Settings) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// SettingsStore holds the live settings shared between the options screen,
// which edits them, and the renderer and mixer, which read them.
type SettingsStore struct {
	mu   sync.RWMutex
	path string
	s    Settings
}

// NewSettingsStore creates a store persisting to path.
func NewSettingsStore(path string, s Settings) *SettingsStore {
	return &SettingsStore{path: path, s: s}
}

// Get returns a copy of the current settings.
func (st *SettingsStore) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Set replaces the current settings.
func (st *SettingsStore) Set(s Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = s
}

// Save writes the current settings to the store's path.
func (st *SettingsStore) Save() error {
	return SaveSettings(st.path, st.Get())
}

// Path returns the settings file path.
func (st *SettingsStore) Path() string {
	return st.path
}
