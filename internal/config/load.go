package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the config from defaults, then the config file (the -config
// flag, else the first standard location that exists), then flag overrides.
// Call ParseFlags first.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	return build(path, applyFlags)
}

// LoadFile is Load without flags and without the search: defaults merged
// with path, if any. Tools that keep their own flag sets use it.
func LoadFile(path string) (*Config, error) {
	return build(path, nil)
}

func build(path string, override func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "toonrig")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "toonrig")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "toonrig")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "toonrig")
	}
}

// loadFromFile merges a YAML file into cfg. Keys absent from the file keep
// their current values; unknown keys are an error.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// UnmarshalYAML replaces f instead of merging into it, so a default family
// can be dropped from a file.
func (f *Families) UnmarshalYAML(value *yaml.Node) error {
	m := make(map[string]int)
	if err := value.Decode(&m); err != nil {
		return err
	}
	*f = m
	return nil
}
