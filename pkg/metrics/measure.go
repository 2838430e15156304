package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/observability"
)

// Timed pairs a result with the wall-clock time it took to produce.
type Timed[T any] struct {
	Result  T
	Elapsed time.Duration
}

// Seconds returns Elapsed in fractional seconds.
func (t Timed[T]) Seconds() float64 { return t.Elapsed.Seconds() }

// Measure runs fn and records how long it took. Errors and panics from fn
// are logged and replaced by the zero value of T; Measure itself never
// fails.
func Measure[T any](ctx context.Context, logger *log.Logger, name string, fn func(context.Context) (T, error)) (out Timed[T]) {
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = Timed[T]{Result: zero, Elapsed: time.Since(start)}
			logger.Error("metric panicked", "metric", name, "panic", r, "elapsed", out.Elapsed)
			observability.Scoring().OnMetricComplete(ctx, name, out.Elapsed, fmt.Errorf("panic: %v", r))
		}
	}()

	result, err := fn(ctx)
	elapsed := time.Since(start)
	observability.Scoring().OnMetricComplete(ctx, name, elapsed, err)
	if err != nil {
		kv := []any{"metric", name, "err", err, "elapsed", elapsed}
		if code := errors.GetCode(err); code != "" {
			kv = append(kv, "code", code)
		}
		logger.Error("metric failed", kv...)
		var zero T
		return Timed[T]{Result: zero, Elapsed: elapsed}
	}
	logger.Debug("metric done", "metric", name, "result", result, "elapsed", elapsed)
	return Timed[T]{Result: result, Elapsed: elapsed}
}
