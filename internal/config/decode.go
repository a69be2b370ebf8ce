package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config and theme input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("empty document")
	ErrInputTooLarge = errors.New("input exceeds maximum size")
)

// decodeYAML unmarshals data into v. Strict mode rejects unknown fields,
// which catches typos in the tool config; themes carry many unrelated
// keys and are decoded leniently.
func decodeYAML(data []byte, v any, strict bool) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	var opts []yaml.DecodeOption
	if strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}
