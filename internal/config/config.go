// Package config handles loading configuration from .ltfindrc files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is the default configuration file name.
const DefaultConfigFileName = ".ltfindrc.yaml"

// ConfigFileNames are looked up in order in every directory by FindAndLoad.
var ConfigFileNames = []string{DefaultConfigFileName, ".ltfindrc.yml", ".ltfindrc.toml"}

// Config represents the complete configuration structure.
type Config struct {
	// LayoutTestsDir is the root of the layout tests.
	// Relative values are resolved against the directory of the config file.
	LayoutTestsDir string `yaml:"layout_tests_dir" toml:"layout_tests_dir"`

	// Paths are the selectors used when none are given on the command line.
	// Example: "fast/dom", "svg/*/text-*.svg"
	Paths []string `yaml:"paths" toml:"paths"`

	// Source is the file the config was read from, empty if none.
	Source string `yaml:"-" toml:"-"`
}

// LoadFrom reads configuration from a specific path. The format is chosen
// from the extension: .toml files are TOML, everything else YAML.
// Returns an empty config if the file doesn't exist (not an error).
// Returns an error only if the file exists but cannot be parsed.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Source = path
	if cfg.LayoutTestsDir != "" && !filepath.IsAbs(cfg.LayoutTestsDir) {
		cfg.LayoutTestsDir = filepath.Join(filepath.Dir(path), cfg.LayoutTestsDir)
	}

	return cfg, nil
}

// FindAndLoad searches for a config file starting from the given directory
// and walking up to parent directories until it finds one or reaches root.
func FindAndLoad(startDir string) (*Config, error) {
	dir := startDir

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return LoadFrom(configPath)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return &Config{}, nil
		}
		dir = parent
	}
}

// IsEmpty returns true if the config sets nothing.
func (c *Config) IsEmpty() bool {
	return c.LayoutTestsDir == "" && len(c.Paths) == 0
}

// Merge combines another config into this one.
// A non-empty LayoutTestsDir in other wins; paths are appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.LayoutTestsDir != "" {
		c.LayoutTestsDir = other.LayoutTestsDir
	}
	c.Paths = append(c.Paths, other.Paths...)
}
