// Package config provides configuration file loading for compdb-wrapper.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no other configuration file is named.
const DefaultPath = "/etc/compdb-wrapper.yaml"

// LoggingConfig represents the logging section.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level"`
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	Console   bool   `yaml:"console"`
}

// WrapperConfig represents the compiler wrapper configuration.
type WrapperConfig struct {
	// Enabled turns entry embedding on. When false every call is passed
	// through untouched.
	Enabled bool `yaml:"enabled"`
	// Compiler is the real compiler, looked up in PATH unless absolute.
	Compiler string `yaml:"compiler"`
	// Header is the forced include consuming the injected macros.
	Header          string        `yaml:"header"`
	CompileOnlyFlag string        `yaml:"compile_only_flag"`
	SourceSuffixes  []string      `yaml:"source_suffixes"`
	Logging         LoggingConfig `yaml:"logging"`
}

// DefaultWrapperConfig returns the configuration used when no file exists.
func DefaultWrapperConfig() *WrapperConfig {
	return &WrapperConfig{
		Enabled:         true,
		Compiler:        "clang++",
		Header:          "CompilationDatabaseMagic.h",
		CompileOnlyFlag: "-c",
		SourceSuffixes:  []string{".cpp"},
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// LoadWrapperConfig loads wrapper configuration from a file. A missing file
// yields the defaults; keys absent from the file keep their defaults.
func LoadWrapperConfig(path string) (*WrapperConfig, error) {
	config := DefaultWrapperConfig()

	if path == "" {
		return config, nil
	}

	// If config file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the fields the wrapper cannot run without.
func (c *WrapperConfig) Validate() error {
	if c.Compiler == "" {
		return fmt.Errorf("compiler must not be empty")
	}
	if c.Header == "" {
		return fmt.Errorf("header must not be empty")
	}
	if c.CompileOnlyFlag == "" {
		return fmt.Errorf("compile_only_flag must not be empty")
	}
	return nil
}
