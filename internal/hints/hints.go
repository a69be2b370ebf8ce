// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"net/http"
	"os"
	"strings"
)

// proxyVars lists the environment variables net/http consults for proxies.
var proxyVars = []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"}

// ForNetwork returns hints for transport failures (DNS, refused connections, TLS).
// Suggests proxy variables when none is set, since build sandboxes often
// have no direct internet access.
func ForNetwork() string {
	hints := []string{"check network access to the fonts API"}

	proxySet := false
	for _, name := range proxyVars {
		if os.Getenv(name) != "" {
			proxySet = true
			break
		}
	}
	if !proxySet {
		hints = append(hints, "set HTTPS_PROXY if the build runs behind a proxy")
	}

	return formatHints(hints)
}

// ForHTTPStatus returns hints for a non-success response from the fonts API.
func ForHTTPStatus(code int) string {
	switch {
	case code == http.StatusBadRequest:
		return format("check the family names and axis syntax, e.g. Barlow:wght@500;700")
	case code == http.StatusNotFound:
		return format("check --api-url points at a css2 endpoint")
	case code == http.StatusTooManyRequests:
		return format("the API is rate limiting; retry later")
	case code >= 500:
		return format("the API is unavailable; retry later")
	default:
		return ""
	}
}

// ForTimeout returns a hint about raising the request timeout.
func ForTimeout() string {
	return format("increase --timeout or unset FONTMIRROR_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-fontmirror/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), ".config/go-fontmirror") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForThemeField returns a hint describing the expected theme layout.
func ForThemeField() string {
	return format(`theme needs {"fonts": {"font_family": {"primary": "...", "secondary": "..."}}}`)
}

// ForOutputDirectory returns hints for output or download directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// filepathToSlash normalizes Windows separators for substring checks.
func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
