package mock

import (
	"context"
	"image"
	"io"

	"github.com/fwojciec/webcollage"
)

var _ webcollage.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of webcollage.Decoder.
type Decoder struct {
	DecodeFn func(r io.Reader) (image.Image, string, error)
}

func (d *Decoder) Decode(r io.Reader) (image.Image, string, error) {
	return d.DecodeFn(r)
}

var _ webcollage.Sink = (*Sink)(nil)

// Sink is a mock implementation of webcollage.Sink.
type Sink struct {
	ShowFn func(ctx context.Context, img *webcollage.Image) error
}

func (s *Sink) Show(ctx context.Context, img *webcollage.Image) error {
	return s.ShowFn(ctx, img)
}

var _ webcollage.Recorder = (*Recorder)(nil)

// Recorder is a mock implementation of webcollage.Recorder.
type Recorder struct {
	RecordFn func(event webcollage.Event)
}

func (r *Recorder) Record(event webcollage.Event) {
	r.RecordFn(event)
}
