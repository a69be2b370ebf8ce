package fontmirror

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/alnah/go-fontmirror/internal/fetch"
)

// mockFetcher serves canned bodies keyed by URL and records every request.
// Unknown URLs answer 404, like a real server.
type mockFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	delays map[string]time.Duration
	calls  []string
}

func newMockFetcher(bodies map[string]string) *mockFetcher {
	return &mockFetcher{
		bodies: bodies,
		errs:   make(map[string]error),
		delays: make(map[string]time.Duration),
	}
}

func (m *mockFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	delay := m.delays[url]
	err := m.errs[url]
	body, ok := m.bodies[url]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &fetch.StatusError{URL: url, StatusCode: http.StatusNotFound}
	}
	return []byte(body), nil
}

// callCount returns how many times url was requested.
func (m *mockFetcher) callCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == url {
			n++
		}
	}
	return n
}

// totalCalls returns the number of requests made.
func (m *mockFetcher) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
