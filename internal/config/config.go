// Package config loads the optional YAML configuration file of the md2wx CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for
// config files by name.
const AppDirName = "go-md2wx"

// Field limits.
const (
	MaxThemeNameLength = 64
	MaxPathLength      = 4096
	MaxStyleLength     = 64
	MaxAssetDirs       = 32
	MaxSearchDepth     = 64
	MaxSearchEntries   = 10_000_000
)

// Config holds the CLI configuration. CLI flags override every field.
type Config struct {
	Theme     string          `yaml:"theme"`    // theme name (empty = built-in default)
	ThemeDir  string          `yaml:"themeDir"` // directory of custom theme files
	Assets    []string        `yaml:"assets"`   // extra image search roots, searched first
	Images    ImagesConfig    `yaml:"images"`
	Highlight HighlightConfig `yaml:"highlight"`
	Search    SearchConfig    `yaml:"search"`
}

// ImagesConfig controls image extraction.
type ImagesConfig struct {
	Enabled bool `yaml:"enabled"` // false renders placeholders (default: true)
}

// HighlightConfig controls syntax highlighting of code blocks.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name (empty = escape only)
}

// SearchConfig bounds the image subtree search. Zero keeps the default.
type SearchConfig struct {
	MaxDepth   int `yaml:"maxDepth"`
	MaxEntries int `yaml:"maxEntries"`
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for callers that build
// a Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme", c.Theme, MaxThemeNameLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Theme, `/\`) {
		return fmt.Errorf("%w: theme %q must be a name, not a path (use themeDir)", ErrInvalidValue, c.Theme)
	}
	if err := validateFieldLength("themeDir", c.ThemeDir, MaxPathLength); err != nil {
		return err
	}
	if len(c.Assets) > MaxAssetDirs {
		return fmt.Errorf("%w: assets has %d entries (max %d)", ErrInvalidValue, len(c.Assets), MaxAssetDirs)
	}
	for i, dir := range c.Assets {
		if dir == "" {
			return fmt.Errorf("%w: assets[%d] is empty", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("assets[%d]", i), dir, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateRange("search.maxDepth", c.Search.MaxDepth, MaxSearchDepth); err != nil {
		return err
	}
	return validateRange("search.maxEntries", c.Search.MaxEntries, MaxSearchEntries)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateRange(fieldName string, value, maxValue int) error {
	if value < 0 || value > maxValue {
		return fmt.Errorf("%w: %s = %d (must be 0-%d)", ErrInvalidValue, fieldName, value, maxValue)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// built-in default theme, images enabled, no highlighting.
func DefaultConfig() *Config {
	return &Config{
		Images: ImagesConfig{Enabled: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2wx/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
