package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/webcollage"
)

var _ webcollage.Sink = (MultiSink)(nil)

// MultiSink shows every image on each of its sinks in order.
// An error from one sink does not stop the others.
type MultiSink []webcollage.Sink

// Show delivers img to every sink and joins their errors.
func (m MultiSink) Show(ctx context.Context, img *webcollage.Image) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Show(ctx, img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ webcollage.Recorder = (MultiRecorder)(nil)

// MultiRecorder forwards every event to each of its recorders.
type MultiRecorder []webcollage.Recorder

// Record forwards the event.
func (m MultiRecorder) Record(event webcollage.Event) {
	for _, r := range m {
		r.Record(event)
	}
}
