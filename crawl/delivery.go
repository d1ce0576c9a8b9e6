package crawl

import (
	"context"

	"github.com/fwojciec/webcollage"
)

// Delivery is the bounded buffer of decoded images between the fetch
// workers and the delivery loop. Put blocks while the buffer is full,
// which is the only backpressure the crawl applies.
type Delivery struct {
	images chan *webcollage.Image
}

// NewDelivery creates a Delivery holding at most capacity images.
func NewDelivery(capacity int) *Delivery {
	return &Delivery{images: make(chan *webcollage.Image, capacity)}
}

// Put adds an image, blocking while the buffer is full.
// Returns the context's error, without adding the image, if the context is
// canceled first.
func (d *Delivery) Put(ctx context.Context, img *webcollage.Image) error {
	// Prefer cancellation over a free slot so shutdown is deterministic.
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case d.images <- img:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Take removes the oldest image, blocking while the buffer is empty.
func (d *Delivery) Take(ctx context.Context) (*webcollage.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case img := <-d.images:
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of buffered images.
func (d *Delivery) Len() int {
	return len(d.images)
}

// Cap returns the capacity of the buffer.
func (d *Delivery) Cap() int {
	return cap(d.images)
}
