package fontmirror

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Family is a font family request, e.g. "Barlow" with weights 500 and 700.
// Name may already carry an axis spec ("Barlow:wght@500;700"), in which
// case Weights must be empty.
type Family struct {
	Name    string
	Weights []int
}

// Validate checks that the family can be turned into a request.
func (f Family) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFamily)
	}
	if strings.ContainsAny(f.Name, "&#\n\r") {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidFamily, f.Name)
	}
	if len(f.Weights) > 0 && strings.Contains(f.Name, ":") {
		return fmt.Errorf("%w: %q already has an axis spec, weights must be empty", ErrInvalidFamily, f.Name)
	}
	for _, w := range f.Weights {
		if w < 1 || w > 1000 {
			return fmt.Errorf("%w: weight %d out of range 1-1000", ErrInvalidFamily, w)
		}
	}
	return nil
}

// Query returns the value of the css2 "family" query parameter.
// Spaces become '+'; weights are sorted and de-duplicated as the API requires.
func (f Family) Query() string {
	name := strings.ReplaceAll(strings.TrimSpace(f.Name), " ", "+")
	if len(f.Weights) == 0 {
		return name
	}

	weights := slices.Clone(f.Weights)
	slices.Sort(weights)
	weights = slices.Compact(weights)

	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = strconv.Itoa(w)
	}
	return name + ":wght@" + strings.Join(parts, ";")
}

// Input holds the data for a single mirror run.
// Exactly one source must be given: Families, or a template. A non-empty
// Template implies template mode; set HasTemplate to mirror an empty one.
type Input struct {
	Families    []Family // Fetched from the fonts API, in order
	Template    string   // Local CSS used instead of the fonts API
	HasTemplate bool     // Template mode even when Template is empty
	DownloadDir string   // Where asset files are written (created if absent)
	ServedPath  string   // Prefix for rewritten url() references, e.g. "/static/fonts"
}

func (in Input) templateMode() bool {
	return in.HasTemplate || in.Template != ""
}

// AssetStatus describes what happened to a single asset reference.
type AssetStatus int

const (
	AssetDownloaded AssetStatus = iota // Fetched and written this run
	AssetCached                        // File already present, no request issued
	AssetFailed                        // Download failed, reference left remote
)

func (s AssetStatus) String() string {
	switch s {
	case AssetDownloaded:
		return "downloaded"
	case AssetCached:
		return "cached"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Asset is one url() reference found in the stylesheet and its outcome.
type Asset struct {
	URL      string
	Filename string // Empty when the URL could not be mapped to a file name
	Status   AssetStatus
	Size     int   // Bytes written; zero unless Status is AssetDownloaded
	Err      error // Set when Status is AssetFailed
}

// Result holds the outcome of a run.
type Result struct {
	Source string  // Combined stylesheet before rewriting
	CSS    string  // Rewritten stylesheet
	Assets []Asset // In match order, duplicates included
}

// Counts tallies assets by status.
func (r *Result) Counts() (downloaded, cached, failed int) {
	for _, a := range r.Assets {
		switch a.Status {
		case AssetDownloaded:
			downloaded++
		case AssetCached:
			cached++
		case AssetFailed:
			failed++
		}
	}
	return downloaded, cached, failed
}

// Fetcher retrieves the body of a URL. Implementations must return an
// error for non-success statuses.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	baseURL      string
	display      string
	fallbackName string
	userAgent    string
	timeout      time.Duration
	httpClient   *http.Client
}

// Defaults used when no option overrides them.
const (
	DefaultBaseURL      = "https://fonts.googleapis.com/css2"
	DefaultDisplay      = "swap"
	DefaultFallbackName = "index.html"
)

// WithBaseURL sets the css2 endpoint. Empty keeps the default.
func WithBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.cfg.baseURL = u
		}
	}
}

// WithDisplay sets the font-display value requested from the API.
func WithDisplay(display string) Option {
	return func(s *Service) {
		if display != "" {
			s.cfg.display = display
		}
	}
}

// WithFallbackName sets the file name used for URLs with an empty path.
func WithFallbackName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cfg.fallbackName = name
		}
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Service) {
		s.cfg.userAgent = ua
	}
}

// WithTimeout bounds each HTTP request. By default only the context applies.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("fontmirror: WithTimeout duration must not be negative")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithHTTPClient sets the http.Client used by the default fetcher.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		s.cfg.httpClient = hc
	}
}

// WithFetcher replaces the HTTP fetcher entirely. Other HTTP options are ignored.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}
