package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/observability"
)

// httpLogHooks logs every outgoing API call at debug level.
type httpLogHooks struct {
	observability.NoopHTTPHooks
	logger *log.Logger
}

func (h httpLogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "host", host, "path", path, "status", status,
		"elapsed", d.Round(time.Millisecond))
}

func (h httpLogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http failed", "method", method, "host", host, "path", path, "err", err)
}
