package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load layers the first config file found over Default, then the
// command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()
	if path := locate(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// locate returns the --config path, or else the first of ./gridpath.yaml
// and ConfigDir()/config.yaml that exists.
func locate() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	for _, path := range []string{"gridpath.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory holding config.yaml.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GridPath")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GridPath")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridpath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridpath")
}

// loadFromFile overwrites the fields present in the file. Unknown keys are
// errors; an empty file changes nothing.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
