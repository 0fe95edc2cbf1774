// Package cli implements the pixelgrid command-line interface.
//
// The commands render the grid overlay CSS, manage persisted settings, serve
// the settings API, and drive a browser page that carries the overlay. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - css: Print the overlay style for a viewport
//   - settings: Show, edit, export and import the stored settings
//   - serve: Run the settings API and message endpoint
//   - inject: Open a page in Chrome and keep the overlay in sync with it
//   - push: Send the stored settings to a running serve or inject
//   - panel: Edit the settings interactively
//
// # Logging
//
// Commands log through a charmbracelet/log logger carried in the command's
// context. --verbose (-v) lowers the level to debug. The interactive panel
// raises it to error so log lines do not tear the screen.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with short wall-clock timestamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
}

// progress times one command. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time and any extra key/value
// pairs.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
