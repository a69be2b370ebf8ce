package fontmirror

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-fontmirror/internal/fetch"
	"github.com/alnah/go-fontmirror/internal/fileutil"
)

// Compile-time interface implementation check.
var _ Fetcher = (*fetch.Client)(nil)

// Service mirrors font stylesheets and their assets.
// A Service holds no per-run state and is safe for concurrent use as long as
// concurrent runs target different download directories.
type Service struct {
	cfg     serviceConfig
	fetcher Fetcher
	log     logrus.FieldLogger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithBaseURL, WithUserAgent).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			baseURL:      DefaultBaseURL,
			display:      DefaultDisplay,
			fallbackName: DefaultFallbackName,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.log = discard
	}

	// Build the HTTP fetcher unless one was injected (e.g., by tests)
	if s.fetcher == nil {
		s.fetcher = fetch.New(
			fetch.WithHTTPClient(s.cfg.httpClient),
			fetch.WithUserAgent(s.cfg.userAgent),
			fetch.WithTimeout(s.cfg.timeout),
		)
	}

	return s
}

// Run obtains the source stylesheet, downloads its assets and returns the
// rewritten CSS. Nothing but asset files is written.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	source := input.Template
	if len(input.Families) > 0 {
		var err error
		source, err = s.fetchFamilies(ctx, input.Families)
		if err != nil {
			return nil, err
		}
	}

	css, assets, err := s.Localize(ctx, source, input.DownloadDir, input.ServedPath)
	if err != nil {
		return nil, err
	}

	return &Result{Source: source, CSS: css, Assets: assets}, nil
}

// RunToFile runs the pipeline and writes the rewritten CSS to outputPath,
// replacing any existing file. The output is only written when every
// stylesheet was fetched.
func (s *Service) RunToFile(ctx context.Context, input Input, outputPath string) (*Result, error) {
	res, err := s.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, []byte(res.CSS)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteOutput, outputPath, err)
	}

	downloaded, cached, failed := res.Counts()
	s.log.WithFields(logrus.Fields{
		"output":     outputPath,
		"downloaded": downloaded,
		"cached":     cached,
		"failed":     failed,
	}).Debug("stylesheet written")

	return res, nil
}

// validateInput checks the source and destination fields.
func validateInput(input Input) error {
	if len(input.Families) > 0 && input.templateMode() {
		return ErrConflictingSource
	}
	if len(input.Families) == 0 && !input.templateMode() {
		return ErrNoSource
	}
	if input.DownloadDir == "" {
		return ErrNoDownloadDir
	}
	return nil
}
