package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/webcollage"
)

// Ensure Recorder implements webcollage.Recorder.
var _ webcollage.Recorder = (*Recorder)(nil)

// Recorder writes crawl events to a structured logger.
//
// Admissions are logged at debug level since every page yields many of
// them. Failures are warnings carrying the error code.
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder creates a new Recorder.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Record logs the event.
func (r *Recorder) Record(e webcollage.Event) {
	ctx := context.Background()
	msg := e.Type.String()

	switch e.Type {
	case webcollage.EventAdmitted:
		r.logger.DebugContext(ctx, msg, "url", e.URL)
	case webcollage.EventPageScanned:
		r.logger.InfoContext(ctx, msg, "url", e.URL, "links", e.Links, "lines", e.Lines)
	case webcollage.EventImageQueued:
		r.logger.DebugContext(ctx, msg, "url", e.URL)
	case webcollage.EventImageDelivered:
		attrs := []any{"url", e.URL, "pending", e.Pending, "buffered", e.Buffered}
		if e.Err != nil {
			r.logger.WarnContext(ctx, msg, append(attrs, "code", webcollage.ErrorCode(e.Err), "err", e.Err)...)
			return
		}
		r.logger.InfoContext(ctx, msg, attrs...)
	case webcollage.EventFailed:
		r.logger.WarnContext(ctx, msg,
			"url", e.URL,
			"code", webcollage.ErrorCode(e.Err),
			"err", webcollage.ErrorMessage(e.Err),
		)
	default:
		r.logger.InfoContext(ctx, msg, "url", e.URL)
	}
}
