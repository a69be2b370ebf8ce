package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for theme operations.
var (
	ErrThemeNotFound = errors.New("theme file not found")
	ErrThemeParse    = errors.New("failed to parse theme")
	ErrThemeField    = errors.New("theme is missing a required field")
)

// Theme is the subset of a site theme document the mirror reads.
// Only fonts.font_family.primary and fonts.font_family.secondary are used;
// every other key is ignored.
type Theme struct {
	Fonts struct {
		FontFamily struct {
			Primary   string `json:"primary" yaml:"primary"`
			Secondary string `json:"secondary" yaml:"secondary"`
		} `json:"font_family" yaml:"font_family"`
	} `json:"fonts" yaml:"fonts"`
}

// Families returns the primary and secondary family, in that order.
func (t *Theme) Families() []string {
	return []string{t.Fonts.FontFamily.Primary, t.Fonts.FontFamily.Secondary}
}

// Validate reports the first required family that is missing.
func (t *Theme) Validate() error {
	if strings.TrimSpace(t.Fonts.FontFamily.Primary) == "" {
		return fmt.Errorf("%w: fonts.font_family.primary", ErrThemeField)
	}
	if strings.TrimSpace(t.Fonts.FontFamily.Secondary) == "" {
		return fmt.Errorf("%w: fonts.font_family.secondary", ErrThemeField)
	}
	if err := validateFieldLength("fonts.font_family.primary", t.Fonts.FontFamily.Primary, MaxFamilyLength); err != nil {
		return err
	}
	return validateFieldLength("fonts.font_family.secondary", t.Fonts.FontFamily.Secondary, MaxFamilyLength)
}

// LoadTheme reads a theme document. Files ending in .json are decoded as
// JSON; anything else goes through the YAML decoder.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- theme path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, path)
		}
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	theme, err := ParseTheme(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}

// ParseTheme decodes and validates theme data.
func ParseTheme(data []byte, isJSON bool) (*Theme, error) {
	var theme Theme
	if isJSON {
		if len(data) > MaxInputSize {
			return nil, fmt.Errorf("%w: %w: %d bytes (max %d)", ErrThemeParse, ErrInputTooLarge, len(data), MaxInputSize)
		}
		if err := json.Unmarshal(data, &theme); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThemeParse, err)
		}
	} else if err := decodeYAML(data, &theme, false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeParse, err)
	}

	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}
