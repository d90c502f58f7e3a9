// Package config loads qalc settings from ~/.qalc/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atinylittleshell/qalc/internal/core"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "QALC_CONFIG"

type Config struct {
	LogLevel       string         `yaml:"log_level"`
	HistoryLimit   int            `yaml:"history_limit"`
	PersistHistory bool           `yaml:"persist_history"`
	GroupDigits    bool           `yaml:"group_digits"`
	StartVisible   bool           `yaml:"start_visible"`
	Hotkey         HotkeySettings `yaml:"hotkey"`
	Window         WindowSettings `yaml:"window"`
	// Keys rebinds window actions, e.g. {"copy": ["ctrl+y", "alt+c"]}.
	Keys map[string][]string `yaml:"keys"`
}

type HotkeySettings struct {
	Enabled  bool   `yaml:"enabled"`
	Modifier string `yaml:"modifier"`
	Key      string `yaml:"key"`
}

// WindowSettings holds shell commands run when the calculator window is
// shown or hidden, e.g. wmctrl or yabai invocations for the host terminal.
type WindowSettings struct {
	ShowCommand string `yaml:"show_command"`
	HideCommand string `yaml:"hide_command"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		LogLevel:     "info",
		HistoryLimit: 50,
		Hotkey: HotkeySettings{
			Enabled:  true,
			Modifier: "alt",
			Key:      "space",
		},
	}
}

// Loader reads the config file from an explicit path, $QALC_CONFIG or
// ~/.qalc/config.yaml, in that order.
type Loader struct {
	overridePath string
}

func NewLoader(path string) *Loader {
	return &Loader{overridePath: path}
}

// Load returns the defaults when the file does not exist. Keys absent from
// the file keep their default values.
func (l *Loader) Load() (Config, error) {
	path := l.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Path is the file Load reads.
func (l *Loader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return core.ConfigFile()
}

func hydrateDefaults(cfg Config) Config {
	defaults := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.Hotkey.Modifier == "" {
		cfg.Hotkey.Modifier = defaults.Hotkey.Modifier
	}
	if cfg.Hotkey.Key == "" {
		cfg.Hotkey.Key = defaults.Hotkey.Key
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Hotkey.Modifier = strings.ToLower(cfg.Hotkey.Modifier)
	cfg.Hotkey.Key = strings.ToLower(cfg.Hotkey.Key)
	if len(cfg.Keys) > 0 {
		keys := make(map[string][]string, len(cfg.Keys))
		for action, bound := range cfg.Keys {
			keys[strings.ToLower(action)] = bound
		}
		cfg.Keys = keys
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(core.HomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
