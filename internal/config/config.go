package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-fontmirror/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Defaults for the fonts API and downloads.
const (
	DefaultBaseURL      = "https://fonts.googleapis.com/css2"
	DefaultDisplay      = "swap"
	DefaultFallbackName = "index.html"
)

// Field length limits.
const (
	MaxURLLength        = 2048 // Browser limit
	MaxDisplayLength    = 20   // "swap", "optional", "fallback"
	MaxUserAgentLength  = 512
	MaxFileNameLength   = 255 // Common filesystem limit
	MaxServedPathLength = 1024
	MaxFamilyLength     = 200 // "Barlow:ital,wght@0,500;0,700;1,500"
	MaxFamilies         = 32
)

// validDisplays lists the font-display values the fonts API accepts.
var validDisplays = map[string]bool{
	"auto":     true,
	"block":    true,
	"swap":     true,
	"fallback": true,
	"optional": true,
}

// Config holds all configuration for a mirror run.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Download DownloadConfig `yaml:"download"`
	Families []string       `yaml:"families"` // Fetched after the theme's families
}

// APIConfig defines the remote stylesheet endpoint.
type APIConfig struct {
	BaseURL   string `yaml:"baseURL"`   // Default: https://fonts.googleapis.com/css2
	Display   string `yaml:"display"`   // font-display value (default: "swap")
	UserAgent string `yaml:"userAgent"` // Empty = fetch.DefaultUserAgent
}

// DownloadConfig defines how assets are stored and referenced.
type DownloadConfig struct {
	FallbackName string `yaml:"fallbackName"` // Name used when a URL has no path
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("api.baseURL", c.API.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.API.BaseURL != "" {
		if !fileutil.IsURL(c.API.BaseURL) {
			return fmt.Errorf("%w: api.baseURL: must be an http or https URL, got %q", ErrInvalidField, c.API.BaseURL)
		}
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: api.baseURL: %q is not a valid URL", ErrInvalidField, c.API.BaseURL)
		}
		if u.RawQuery != "" {
			return fmt.Errorf("%w: api.baseURL: must not contain a query string", ErrInvalidField)
		}
	}

	if err := validateFieldLength("api.display", c.API.Display, MaxDisplayLength); err != nil {
		return err
	}
	if c.API.Display != "" && !validDisplays[strings.ToLower(c.API.Display)] {
		return fmt.Errorf("%w: api.display: invalid value %q (must be auto, block, swap, fallback, or optional)", ErrInvalidField, c.API.Display)
	}

	if err := validateFieldLength("api.userAgent", c.API.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}

	if err := validateFieldLength("download.fallbackName", c.Download.FallbackName, MaxFileNameLength); err != nil {
		return err
	}
	if c.Download.FallbackName != "" {
		if err := fileutil.ValidateName(c.Download.FallbackName); err != nil {
			return fmt.Errorf("%w: download.fallbackName: %v", ErrInvalidField, err)
		}
	}

	if len(c.Families) > MaxFamilies {
		return fmt.Errorf("%w: families: %d entries (max %d)", ErrInvalidField, len(c.Families), MaxFamilies)
	}
	for i, family := range c.Families {
		if strings.TrimSpace(family) == "" {
			return fmt.Errorf("%w: families[%d]: cannot be empty", ErrInvalidField, i)
		}
		if err := validateFieldLength(fmt.Sprintf("families[%d]", i), family, MaxFamilyLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Display: DefaultDisplay,
		},
		Download: DownloadConfig{
			FallbackName: DefaultFallbackName,
		},
	}
}

// applyDefaults fills empty fields of a loaded config.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Display == "" {
		c.API.Display = def.API.Display
	}
	if c.Download.FallbackName == "" {
		c.Download.FallbackName = def.Download.FallbackName
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
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

	var cfg Config
	if err := decodeYAML(data, &cfg, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-fontmirror", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory first, then ~/.config/go-fontmirror/.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
