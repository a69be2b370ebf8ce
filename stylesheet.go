package fontmirror

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// StylesheetURL builds the css2 request URL for a family.
// The family value is inserted unescaped apart from spaces, because the API
// expects literal ':', '@', ';' and ',' in axis specs.
func StylesheetURL(baseURL string, f Family, display string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?family=")
	b.WriteString(f.Query())
	if display != "" {
		b.WriteString("&display=")
		b.WriteString(display)
	}
	return b.String()
}

// FetchStylesheets requests every URL concurrently and joins the bodies with
// newlines, in the order given. The first failure cancels the outstanding
// requests and is returned; no partial text is produced.
func (s *Service) FetchStylesheets(ctx context.Context, urls []string) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoSource
	}

	bodies := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)

	for i, u := range urls {
		g.Go(func() error {
			s.log.WithField("url", u).Debug("fetching stylesheet")
			data, err := s.fetcher.Get(gctx, u)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrStylesheetFetch, u, err)
			}
			bodies[i] = string(data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(bodies, "\n"), nil
}

// fetchFamilies validates families, builds their URLs and fetches them.
func (s *Service) fetchFamilies(ctx context.Context, families []Family) (string, error) {
	urls := make([]string, len(families))
	for i, f := range families {
		if err := f.Validate(); err != nil {
			return "", err
		}
		urls[i] = StylesheetURL(s.cfg.baseURL, f, s.cfg.display)
	}
	return s.FetchStylesheets(ctx, urls)
}
