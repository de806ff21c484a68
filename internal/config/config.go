// Package config loads and saves the application configuration: machine
// settings, per-section parameter defaults, and the coolant code catalog.
// The generation core never touches this package; it receives the already
// resolved values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// ConfigError reports a missing or unusable configuration entry. It is
// distinct from a validation failure so callers can tell "bad environment"
// apart from "bad user input".
type ConfigError struct {
	Key string
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Msg)
}

// Defaults holds the per-section parameter defaults applied when a job
// file leaves a section out.
type Defaults struct {
	Position  model.Position  `json:"position"`
	Stock     model.Stock     `json:"stock"`
	Roughing  model.Roughing  `json:"roughing"`
	Finishing model.Finishing `json:"finishing"`
}

// AppConfig is the full persisted application configuration.
type AppConfig struct {
	Defaults       Defaults                      `json:"defaults"`
	Machine        model.MachineSettings         `json:"machine_settings"`
	CoolantOptions map[string]model.CoolantCodes `json:"coolant_options"`
}

// DefaultAppConfig returns the built-in configuration used when no config
// file exists yet.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Defaults: Defaults{
			Position:  model.DefaultPosition(),
			Stock:     model.DefaultStock(),
			Roughing:  model.DefaultRoughing(),
			Finishing: model.DefaultFinishing(),
		},
		Machine: model.DefaultMachineSettings(),
		CoolantOptions: map[string]model.CoolantCodes{
			"Air":          {OnCode: 81, OffCode: 82},
			"Internal air": {OnCode: 79, OffCode: 80},
			"Cold air":     {OnCode: 83, OffCode: 84},
			"Oil Mist":     {OnCode: 8, OffCode: 9},
		},
	}
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.facemill/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".facemill")
}

// DefaultConfigPath returns the default path for the config file. A
// facemill.json in the working directory takes precedence so a machine
// shop can keep per-machine configs next to their job files.
func DefaultConfigPath() string {
	if _, err := os.Stat("facemill.json"); err == nil {
		return "facemill.json"
	}
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Save persists the config to the given path as indented JSON, creating
// missing parent directories.
func Save(path string, cfg AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads an AppConfig from the given path. A missing file returns
// DefaultAppConfig with no error; a malformed file is an error.
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.CoolantOptions == nil {
		cfg.CoolantOptions = map[string]model.CoolantCodes{}
	}
	return cfg, nil
}

// SelectCoolant resolves coolant names against the catalog, preserving the
// order the names were supplied in. An unknown name is a *ConfigError.
func (c AppConfig) SelectCoolant(names []string) ([]model.CoolantSelection, error) {
	selections := make([]model.CoolantSelection, 0, len(names))
	for _, name := range names {
		codes, ok := c.CoolantOptions[name]
		if !ok {
			return nil, &ConfigError{
				Key: "coolant_options." + name,
				Msg: "coolant is not in the catalog",
			}
		}
		selections = append(selections, model.CoolantSelection{Name: name, Codes: codes})
	}
	return selections, nil
}

// CoolantNames returns the catalog names in sorted order, for display.
func (c AppConfig) CoolantNames() []string {
	names := make([]string, 0, len(c.CoolantOptions))
	for name := range c.CoolantOptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
