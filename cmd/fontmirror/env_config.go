package main

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-fontmirror/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // FONTMIRROR_CONFIG: config file name or path
	APIURL     string        // FONTMIRROR_API_URL: css2 endpoint
	UserAgent  string        // FONTMIRROR_USER_AGENT: request User-Agent
	Timeout    time.Duration // FONTMIRROR_TIMEOUT: per-request timeout
}

// knownEnvVars lists valid FONTMIRROR_* environment variables.
var knownEnvVars = map[string]bool{
	"FONTMIRROR_CONFIG":     true,
	"FONTMIRROR_API_URL":    true,
	"FONTMIRROR_USER_AGENT": true,
	"FONTMIRROR_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("FONTMIRROR_CONFIG"),
		APIURL:     os.Getenv("FONTMIRROR_API_URL"),
		UserAgent:  os.Getenv("FONTMIRROR_USER_AGENT"),
	}

	if timeout := os.Getenv("FONTMIRROR_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized FONTMIRROR_* variable.
func warnUnknownEnvVars(log logrus.FieldLogger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "FONTMIRROR_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				log.WithField("name", name).Warn("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig overlays environment values on a loaded config.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.APIURL != "" {
		cfg.API.BaseURL = env.APIURL
	}
	if env.UserAgent != "" {
		cfg.API.UserAgent = env.UserAgent
	}
}
