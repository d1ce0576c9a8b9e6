package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/webcollage"
	"github.com/fwojciec/webcollage/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelivery_Put_blocks_when_full(t *testing.T) {
	t.Parallel()

	d := crawl.NewDelivery(2)
	ctx := context.Background()

	require.NoError(t, d.Put(ctx, &webcollage.Image{URL: "1"}))
	require.NoError(t, d.Put(ctx, &webcollage.Image{URL: "2"}))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 2, d.Cap())

	done := make(chan struct{})
	go func() {
		_ = d.Put(ctx, &webcollage.Image{URL: "3"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Put on a full channel should block")
	case <-time.After(50 * time.Millisecond):
	}

	img, err := d.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", img.URL)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Put did not unblock after Take")
	}
	assert.Equal(t, 2, d.Len())
}

func TestDelivery_Put_returns_on_cancel(t *testing.T) {
	t.Parallel()

	d := crawl.NewDelivery(1)
	require.NoError(t, d.Put(context.Background(), &webcollage.Image{URL: "1"}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Put(ctx, &webcollage.Image{URL: "2"})
	}()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Put did not observe cancellation")
	}
	assert.Equal(t, 1, d.Len(), "canceled Put must not add the image")
}

func TestDelivery_Take_returns_on_cancel(t *testing.T) {
	t.Parallel()

	d := crawl.NewDelivery(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Take(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelivery_concurrent_producers_slow_consumer(t *testing.T) {
	t.Parallel()

	const (
		capacity  = 3
		producers = 5
		perWorker = 20
	)
	d := crawl.NewDelivery(capacity)
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				img := &webcollage.Image{URL: fmt.Sprintf("%d/%d", p, i)}
				assert.NoError(t, d.Put(ctx, img))
			}
		}()
	}

	seen := make(map[string]bool)
	lastPerProducer := make(map[int]int)
	for n := 0; n < producers*perWorker; n++ {
		assert.LessOrEqual(t, d.Len(), capacity)
		img, err := d.Take(ctx)
		require.NoError(t, err)
		assert.False(t, seen[img.URL], "image %s delivered twice", img.URL)
		seen[img.URL] = true

		var p, i int
		_, err = fmt.Sscanf(img.URL, "%d/%d", &p, &i)
		require.NoError(t, err)
		if last, ok := lastPerProducer[p]; ok {
			assert.Greater(t, i, last, "producer %d order not preserved", p)
		}
		lastPerProducer[p] = i

		if n%10 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	wg.Wait()

	assert.Len(t, seen, producers*perWorker, "no image may be lost")
	assert.Equal(t, 0, d.Len())
}
