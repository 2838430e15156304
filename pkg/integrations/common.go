package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a package or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (connection errors, non-2xx responses, bad bodies).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the platform rejects the credentials (401/403).
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with the given timeout.
// A zero timeout means no wall-clock limit; callers rely on context
// cancellation instead.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

var repoURLReplacer = strings.NewReplacer(
	"git+ssh://git@github.com:", "https://github.com/",
	"git@github.com:", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"git+https://", "https://",
	"git+ssh://git@", "https://",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, ssh:// and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = repoURLReplacer.Replace(s)
	s = strings.TrimPrefix(s, "git+")
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// ExtractField reads a string from a registry field that may be either a
// plain string or an object such as {"type": "git", "url": "..."}.
func ExtractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}
