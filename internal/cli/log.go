package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Timestamps carry hundredths of a second
// so that consecutive GitHub round trips stay distinguishable.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one render operation against the logger in ctx.
type progress struct {
	logger *log.Logger
	op     string
	fields []any
	start  time.Time
}

// startProgress logs op at debug level and returns a tracker whose done
// method reports it at info level with the elapsed time.
func startProgress(ctx context.Context, op string, keyvals ...any) *progress {
	l := log.FromContext(ctx)
	l.Debug(op+" started", keyvals...)
	return &progress{logger: l, op: op, fields: keyvals, start: time.Now()}
}

// done logs completion, e.g. `Rendered widget id=sidebar bytes=812 elapsed=412ms`.
func (p *progress) done(keyvals ...any) {
	fields := append(append([]any{}, p.fields...), keyvals...)
	fields = append(fields, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(p.op, fields...)
}
