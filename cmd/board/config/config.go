// Package config loads the soundboard layout: which clips exist, what they
// are called and which key triggers them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid board config")

// Config represents the board.yaml file structure.
type Config struct {
	Dir        string   `yaml:"dir,omitempty"`         // Clip directory, relative files resolve against it
	Notify     bool     `yaml:"notify,omitempty"`      // Desktop notification when a clip fails to start
	SampleRate int      `yaml:"sample_rate,omitempty"` // Output device rate, 0 = default
	Buttons    []Button `yaml:"buttons"`
}

// Button binds one clip to one control.
type Button struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label,omitempty"`
	File  string `yaml:"file"`
	Key   string `yaml:"key,omitempty"`
}

// Title returns the label, falling back to the id.
func (b Button) Title() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// Default returns the stock ceremony board.
func Default() *Config {
	return &Config{
		Buttons: []Button{
			{ID: "opening_procession", Label: "Opening Procession", File: "opening_procession.mp3", Key: "1"},
			{ID: "national_anthem", Label: "National Anthem", File: "national_anthem.mp3", Key: "2"},
			{ID: "open_tapis", Label: "Open Tapis", File: "open_tapis.mp3", Key: "3"},
			{ID: "open_great_lights", Label: "Open Great Lights", File: "open_great_lights.mp3", Key: "4"},
			{ID: "mystic_chain", Label: "Mystic Chain", File: "mystic_chain.mp3", Key: "5"},
			{ID: "rimshot1", Label: "Rimshot 1", File: "rimshot1.mp3", Key: "6"},
			{ID: "rimshot2", Label: "Rimshot 2", File: "rimshot2.mp3", Key: "7"},
			{ID: "rimshot3", Label: "Rimshot 3", File: "rimshot3.mp3", Key: "8"},
			{ID: "rimshot4", Label: "Rimshot 4", File: "rimshot4.mp3", Key: "9"},
		},
	}
}

// Dir returns the soundboard config directory.
// https://specifications.freedesktop.org/basedir/latest/#variables
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "soundboard")
}

// DefaultPath returns the path to the board file.
func DefaultPath() string {
	return filepath.Join(Dir(), "board.yaml")
}

// Load reads the board file at path, or DefaultPath when path is empty.
// Returns the default board if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for missing sections
	if len(cfg.Buttons) == 0 {
		cfg.Buttons = Default().Buttons
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects layouts where a button cannot be addressed unambiguously.
func (c *Config) Validate() error {
	ids := make(map[string]bool, len(c.Buttons))
	keys := make(map[string]string, len(c.Buttons))

	for i, b := range c.Buttons {
		if b.ID == "" {
			return fmt.Errorf("%w: button %d has no id", ErrInvalid, i+1)
		}
		if ids[b.ID] {
			return fmt.Errorf("%w: duplicate button id %q", ErrInvalid, b.ID)
		}
		ids[b.ID] = true

		if b.File == "" {
			return fmt.Errorf("%w: button %q has no file", ErrInvalid, b.ID)
		}
		if b.Key != "" {
			if other, taken := keys[b.Key]; taken {
				return fmt.Errorf("%w: key %q bound to both %q and %q", ErrInvalid, b.Key, other, b.ID)
			}
			keys[b.Key] = b.ID
		}
	}
	return nil
}

// ClipPath resolves a button's file against dir. Absolute files are kept.
func ClipPath(dir string, b Button) string {
	if filepath.IsAbs(b.File) || dir == "" {
		return b.File
	}
	return filepath.Join(dir, b.File)
}

// ResolveDir picks the clip directory: an explicit argument wins over the
// config file, which wins over the working directory.
func (c *Config) ResolveDir(arg string) string {
	switch {
	case arg != "":
		return arg
	case c.Dir != "":
		return c.Dir
	default:
		return "."
	}
}
