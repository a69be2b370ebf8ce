package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	fontmirror "github.com/alnah/go-fontmirror"
	"github.com/alnah/go-fontmirror/internal/config"
	"github.com/alnah/go-fontmirror/internal/fetch"
	"github.com/alnah/go-fontmirror/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("wrong number of arguments")
	ErrInvalidSource  = errors.New("invalid source kind")
	ErrReadTemplate   = errors.New("failed to read CSS template")
	ErrInvalidTimeout = errors.New("timeout must not be negative")
)

// Source kinds accepted by --source.
const (
	sourceTheme    = "theme"
	sourceTemplate = "template"
)

// Mirrorer is the subset of the service the CLI drives.
type Mirrorer interface {
	RunToFile(ctx context.Context, input fontmirror.Input, outputPath string) (*fontmirror.Result, error)
}

// Compile-time interface implementation check.
var _ Mirrorer = (*fontmirror.Service)(nil)

// mirrorArgs holds the positional arguments.
type mirrorArgs struct {
	source      string
	output      string
	downloadDir string
	servedPath  string
}

// runMirror resolves settings, builds the service and runs it.
func runMirror(ctx context.Context, positional []string, flags *mirrorFlags, env *Environment, log *logrus.Logger) error {
	args := mirrorArgs{
		source:      positional[0],
		output:      positional[1],
		downloadDir: positional[2],
		servedPath:  positional[3],
	}
	if len(args.servedPath) > config.MaxServedPathLength {
		return fmt.Errorf("%w: served path (%d chars, max %d)", config.ErrFieldTooLong, len(args.servedPath), config.MaxServedPathLength)
	}

	kind, err := resolveSourceKind(args.source, flags.source)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if flags.api.timeout < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, flags.api.timeout)
	}
	timeout := resolveTimeout(flags.api.timeout, envCfg.Timeout)

	input, err := buildInput(kind, args, cfg)
	if err != nil {
		return err
	}

	svc := fontmirror.New(
		fontmirror.WithBaseURL(cfg.API.BaseURL),
		fontmirror.WithDisplay(strings.ToLower(cfg.API.Display)),
		fontmirror.WithUserAgent(cfg.API.UserAgent),
		fontmirror.WithFallbackName(cfg.Download.FallbackName),
		fontmirror.WithTimeout(timeout),
		fontmirror.WithHTTPClient(env.HTTPClient),
		fontmirror.WithLogger(log),
	)

	return mirror(ctx, svc, input, args.output, flags.common, env)
}

// mirror runs the service and prints the outcome.
func mirror(ctx context.Context, m Mirrorer, input fontmirror.Input, output string, common commonFlags, env *Environment) error {
	start := env.Now()
	res, err := m.RunToFile(ctx, input, output)
	if err != nil {
		return err
	}
	printResult(env.Stdout, res, output, env.Now().Sub(start), common.quiet, common.verbose)
	return nil
}

// resolveSourceKind returns the explicit --source value or guesses from the
// file extension: .css is a template, anything else a theme document.
func resolveSourceKind(path, override string) (string, error) {
	switch strings.ToLower(override) {
	case "":
		if strings.EqualFold(filepath.Ext(path), ".css") {
			return sourceTemplate, nil
		}
		return sourceTheme, nil
	case sourceTheme:
		return sourceTheme, nil
	case sourceTemplate:
		return sourceTemplate, nil
	default:
		return "", fmt.Errorf("%w: %q (must be theme or template)", ErrInvalidSource, override)
	}
}

// loadConfig loads the config named by the flag, falling back to the
// environment, or returns defaults when neither is set.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over config values (CLI wins).
func mergeFlags(flags *mirrorFlags, cfg *config.Config) {
	if flags.api.url != "" {
		cfg.API.BaseURL = flags.api.url
	}
	if flags.api.display != "" {
		cfg.API.Display = flags.api.display
	}
	if flags.api.userAgent != "" {
		cfg.API.UserAgent = flags.api.userAgent
	}
	if flags.fallbackName != "" {
		cfg.Download.FallbackName = flags.fallbackName
	}
}

// resolveTimeout picks the flag value, then the environment value.
// Zero means no per-request timeout.
func resolveTimeout(flagTimeout, envTimeout time.Duration) time.Duration {
	if flagTimeout > 0 {
		return flagTimeout
	}
	return envTimeout
}

// buildInput reads the source file into a service input.
// Theme mode requests the theme's two families followed by any config families.
func buildInput(kind string, args mirrorArgs, cfg *config.Config) (fontmirror.Input, error) {
	input := fontmirror.Input{
		DownloadDir: args.downloadDir,
		ServedPath:  args.servedPath,
	}

	if kind == sourceTemplate {
		data, err := os.ReadFile(args.source) // #nosec G304 -- template path is user-provided
		if err != nil {
			return input, fmt.Errorf("%w: %w", ErrReadTemplate, err)
		}
		input.Template = string(data)
		input.HasTemplate = true
		return input, nil
	}

	theme, err := config.LoadTheme(args.source)
	if err != nil {
		return input, err
	}
	names := append(theme.Families(), cfg.Families...)
	input.Families = make([]fontmirror.Family, len(names))
	for i, name := range names {
		input.Families[i] = fontmirror.Family{Name: strings.TrimSpace(name)}
	}
	return input, nil
}

// printResult prints the asset list (verbose) and a summary line (unless quiet).
// Failed assets are already logged as warnings by the service.
func printResult(w io.Writer, res *fontmirror.Result, output string, elapsed time.Duration, quiet, verbose bool) {
	if quiet {
		return
	}

	if verbose {
		for _, a := range res.Assets {
			name := a.Filename
			if a.Status == fontmirror.AssetFailed || name == "" {
				name = a.URL
			}
			fmt.Fprintf(w, "  %-10s %s\n", a.Status, name)
		}
	}

	downloaded, cached, failed := res.Counts()
	fmt.Fprintf(w, "Created %s (%d downloaded, %d cached, %d failed) in %v\n",
		output, downloaded, cached, failed, elapsed.Round(time.Millisecond))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	var statusErr *fetch.StatusError
	switch {
	case errors.As(err, &statusErr):
		return hints.ForHTTPStatus(statusErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, fetch.ErrRequest):
		return hints.ForNetwork()
	case errors.Is(err, config.ErrConfigNotFound):
		if configName == "" || strings.ContainsAny(configName, `/\`) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, config.ErrThemeField):
		return hints.ForThemeField()
	case errors.Is(err, fontmirror.ErrWriteOutput), errors.Is(err, fontmirror.ErrWriteAsset):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
