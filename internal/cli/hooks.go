package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghrepos/pkg/observability"
)

// logHooks reports upstream calls and render outcomes at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger.Debug("GitHub request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("GitHub response", "path", path, "status", statusCode, "duration", duration.Round(time.Millisecond))
}

func (h logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger.Debug("GitHub request failed", "path", path, "err", err)
}

func (h logHooks) OnRender(ctx context.Context, username string, outcome observability.Outcome, count int, duration time.Duration) {
	h.logger.Debug("Rendered", "user", username, "outcome", outcome, "repos", count, "duration", duration.Round(time.Millisecond))
}

// registerHooks routes observability events to l.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetRenderHooks(h)
}
