// Package config handles the generator's YAML configuration file and the
// facet registry (the constants file listing operation types, drone platforms
// and drone counts).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration for the generator. All paths are
// resolved relative to the working directory unless absolute.
type Config struct {
	// DataDir holds the catalog section files (one JSON document per file,
	// sorted filename order defines document order).
	DataDir string `yaml:"data_dir"`

	// RegistryFile is the JSON constants file defining the three facets.
	RegistryFile string `yaml:"registry_file"`

	// OutputDir is the root under which run folders and archive/ live.
	OutputDir string `yaml:"output_dir"`

	Defaults DefaultsConfig `yaml:"defaults"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DefaultsConfig is the selection used when a flag is omitted. Empty fields
// fall back to the first registry option of the facet.
type DefaultsConfig struct {
	Operation string `yaml:"operation"`
	Platform  string `yaml:"platform"`
	Count     string `yaml:"count"`
}

// AssetsConfig points at optional branding assets. A configured path that
// does not exist aborts rendering; an empty path means "use built-ins".
type AssetsConfig struct {
	Logo  string      `yaml:"logo"`
	Fonts FontsConfig `yaml:"fonts"`
}

// FontsConfig lists TTF files for the four roles the layouts use.
type FontsConfig struct {
	Body     string `yaml:"body"`
	BodyBold string `yaml:"body_bold"`
	Title    string `yaml:"title"`
	Heading  string `yaml:"heading"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "data/json",
		RegistryFile: "data/constants.json",
		OutputDir:    "output",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML config at path, merged over DefaultConfig. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
