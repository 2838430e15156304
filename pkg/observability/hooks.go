// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about package scoring and API calls.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScoringHooks(&myScoringHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scoring().OnScoreStart(ctx, pkg)
//	// ... score ...
//	observability.Scoring().OnScoreComplete(ctx, pkg, netScore, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scoring Hooks
// =============================================================================

// ScoringHooks receives events from package scoring.
type ScoringHooks interface {
	// OnScoreStart records the start of scoring one package.
	OnScoreStart(ctx context.Context, pkg string)

	// OnScoreComplete records a finished package. err is the resolution
	// error, if the package could not be mapped to a repository.
	OnScoreComplete(ctx context.Context, pkg string, netScore float64, duration time.Duration, err error)

	// OnMetricComplete records one sub-metric. err is set when the metric
	// failed or panicked and was scored 0.
	OnMetricComplete(ctx context.Context, metric string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScoringHooks is a no-op implementation of ScoringHooks.
type NoopScoringHooks struct{}

func (NoopScoringHooks) OnScoreStart(context.Context, string) {}
func (NoopScoringHooks) OnScoreComplete(context.Context, string, float64, time.Duration, error) {
}
func (NoopScoringHooks) OnMetricComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scoringHooks ScoringHooks = NoopScoringHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetScoringHooks registers custom scoring hooks.
// This should be called once at application startup before any scoring.
func SetScoringHooks(h ScoringHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scoringHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Scoring returns the registered scoring hooks.
func Scoring() ScoringHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scoringHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scoringHooks = NoopScoringHooks{}
	httpHooks = NoopHTTPHooks{}
}
