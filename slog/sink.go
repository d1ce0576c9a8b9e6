package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcollage"
)

// Ensure LoggingSink implements webcollage.Sink.
var _ webcollage.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink and logs every image shown.
type LoggingSink struct {
	next   webcollage.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next webcollage.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Show delegates to the wrapped sink.
func (s *LoggingSink) Show(ctx context.Context, img *webcollage.Image) (err error) {
	defer func(begin time.Time) {
		b := img.Bounds()
		s.logger.Debug("show",
			"url", img.URL,
			"format", img.Format,
			"width", b.Dx(),
			"height", b.Dy(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Show(ctx, img)
}
