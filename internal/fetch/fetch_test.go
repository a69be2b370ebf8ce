package fetch_test

// Notes:
// - Tests run against httptest servers only; no external network access.
// - MaxBodySize is a package variable, so the size-limit test does not run in
//   parallel and restores the value on cleanup.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/alnah/go-fontmirror/internal/fetch"
)

// ---------------------------------------------------------------------------
// TestClientGet - Status handling and headers
// ---------------------------------------------------------------------------

func TestClientGet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("body:" + r.Header.Get("User-Agent")))
		case "/redirect":
			http.Redirect(w, r, "/ok", http.StatusFound)
		case "/missing":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name       string
		path       string
		want       string
		wantStatus int
	}{
		{name: "success", path: "/ok", want: "body:test-agent"},
		{name: "redirect followed", path: "/redirect", want: "body:test-agent"},
		{name: "not found", path: "/missing", wantStatus: http.StatusNotFound},
		{name: "server error", path: "/boom", wantStatus: http.StatusInternalServerError},
	}

	client := fetch.New(fetch.WithHTTPClient(srv.Client()), fetch.WithUserAgent("test-agent"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := client.Get(context.Background(), srv.URL+tt.path)
			if tt.wantStatus != 0 {
				var se *fetch.StatusError
				if !errors.As(err, &se) {
					t.Fatalf("Get() error = %v, want *StatusError", err)
				}
				if se.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.wantStatus)
				}
				if !errors.Is(err, fetch.ErrHTTPStatus) {
					t.Errorf("errors.Is(err, ErrHTTPStatus) = false, want true")
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientGet_DefaultUserAgent(t *testing.T) {
	t.Parallel()

	agents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := fetch.New(fetch.WithUserAgent(""), fetch.WithHTTPClient(srv.Client()))
	if _, err := client.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got := <-agents; got != fetch.DefaultUserAgent {
		t.Errorf("User-Agent = %q, want default", got)
	}
}

// ---------------------------------------------------------------------------
// TestClientGet_Encoding - Compressed responses
// ---------------------------------------------------------------------------

func TestClientGet_Encoding(t *testing.T) {
	t.Parallel()

	const payload = "@font-face { font-family: 'Barlow'; }"

	var brBody bytes.Buffer
	bw := brotli.NewWriter(&brBody)
	_, _ = bw.Write([]byte(payload))
	_ = bw.Close()

	var gzBody bytes.Buffer
	gw := gzip.NewWriter(&gzBody)
	_, _ = gw.Write([]byte(payload))
	_ = gw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept-Encoding"); got != "br, gzip" {
			t.Errorf("Accept-Encoding = %q, want %q", got, "br, gzip")
		}
		switch r.URL.Path {
		case "/br":
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write(brBody.Bytes())
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(gzBody.Bytes())
		case "/deflate":
			w.Header().Set("Content-Encoding", "deflate")
			_, _ = w.Write([]byte("x"))
		default:
			_, _ = w.Write([]byte(payload))
		}
	}))
	t.Cleanup(srv.Close)

	client := fetch.New(fetch.WithHTTPClient(srv.Client()))

	for _, path := range []string{"/br", "/gzip", "/plain"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			got, err := client.Get(context.Background(), srv.URL+path)
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if string(got) != payload {
				t.Errorf("Get() = %q, want %q", got, payload)
			}
		})
	}

	t.Run("unsupported encoding", func(t *testing.T) {
		t.Parallel()

		_, err := client.Get(context.Background(), srv.URL+"/deflate")
		if !errors.Is(err, fetch.ErrEncoding) {
			t.Errorf("Get() error = %v, want ErrEncoding", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestClientGet_Failures - Transport, timeout and size errors
// ---------------------------------------------------------------------------

func TestClientGet_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := fetch.New().Get(context.Background(), url)
	if !errors.Is(err, fetch.ErrRequest) {
		t.Errorf("Get() error = %v, want ErrRequest", err)
	}
}

func TestClientGet_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := fetch.New().Get(context.Background(), "http://bad host/")
	if !errors.Is(err, fetch.ErrRequest) {
		t.Errorf("Get() error = %v, want ErrRequest", err)
	}
}

func TestClientGet_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := fetch.New(fetch.WithHTTPClient(srv.Client()), fetch.WithTimeout(50*time.Millisecond))
	_, err := client.Get(context.Background(), srv.URL)
	if !errors.Is(err, fetch.ErrRequest) {
		t.Errorf("Get() error = %v, want ErrRequest", err)
	}
}

func TestClientGet_BodyTooLarge(t *testing.T) {
	old := fetch.MaxBodySize
	fetch.MaxBodySize = 8
	t.Cleanup(func() { fetch.MaxBodySize = old })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	_, err := fetch.New(fetch.WithHTTPClient(srv.Client())).Get(context.Background(), srv.URL)
	if !errors.Is(err, fetch.ErrBodyTooLarge) {
		t.Errorf("Get() error = %v, want ErrBodyTooLarge", err)
	}
}
