package metrics

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	nserrors "github.com/matzehuels/netscore/pkg/errors"
)

func TestMeasure(t *testing.T) {
	got := Measure(context.Background(), quietLogger(), "ok", func(context.Context) (float64, error) {
		time.Sleep(5 * time.Millisecond)
		return 0.75, nil
	})

	if got.Result != 0.75 {
		t.Errorf("Result = %v, want 0.75", got.Result)
	}
	if got.Elapsed < 5*time.Millisecond {
		t.Errorf("Elapsed = %v, want >= 5ms", got.Elapsed)
	}
	if got.Seconds() != got.Elapsed.Seconds() {
		t.Errorf("Seconds() = %v, want %v", got.Seconds(), got.Elapsed.Seconds())
	}
}

func TestMeasureFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context) (string, error)
	}{
		{
			name: "error",
			fn: func(context.Context) (string, error) {
				return "partial", errors.New("boom")
			},
		},
		{
			name: "panic",
			fn: func(context.Context) (string, error) {
				panic("nil map")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Measure(context.Background(), quietLogger(), tt.name, tt.fn)
			if got.Result != "" {
				t.Errorf("Result = %q, want zero value", got.Result)
			}
			if got.Elapsed <= 0 {
				t.Errorf("Elapsed = %v, want > 0", got.Elapsed)
			}
		})
	}
}

func TestMeasurePassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	got := Measure(ctx, nil, "ctx", func(ctx context.Context) (string, error) {
		return ctx.Value(key{}).(string), nil
	})
	if got.Result != "v" {
		t.Errorf("Result = %q, want %q", got.Result, "v")
	}
}

func TestMeasureLogsErrorCode(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.ErrorLevel})

	Measure(context.Background(), logger, NameCorrectness, func(context.Context) (float64, error) {
		return 0, nserrors.New(nserrors.ErrCodeDataShape, "no tree entries")
	})
	if out := buf.String(); !strings.Contains(out, "code=DATA_SHAPE_ERROR") {
		t.Errorf("log = %q, want error code", out)
	}

	buf.Reset()
	Measure(context.Background(), logger, NameRampUp, func(context.Context) (float64, error) {
		return 0, errors.New("plain")
	})
	if out := buf.String(); strings.Contains(out, "code=") {
		t.Errorf("log = %q, want no code for uncoded errors", out)
	}
}
