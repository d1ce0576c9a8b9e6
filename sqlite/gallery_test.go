package sqlite_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/fwojciec/webcollage"
	"github.com/fwojciec/webcollage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGallery(t *testing.T) *sqlite.Gallery {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewGallery(db)
}

func testImage(url, hash string, w, h int) *webcollage.Image {
	bitmap := image.NewRGBA(image.Rect(0, 0, w, h))
	bitmap.Set(0, 0, color.RGBA{R: 255, A: 255})
	return &webcollage.Image{URL: url, Format: "png", Bitmap: bitmap, Hash: hash}
}

func TestGallery_Show(t *testing.T) {
	t.Parallel()

	t.Run("stores image with metadata", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		g := openGallery(t)

		err := g.Show(ctx, testImage("https://example.com/a.png", "aa", 4, 3))
		require.NoError(t, err)

		entries, err := g.FindEntries(ctx, sqlite.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "https://example.com/a.png", e.URL)
		assert.Equal(t, "png", e.Format)
		assert.Equal(t, 4, e.Width)
		assert.Equal(t, 3, e.Height)
		assert.Equal(t, "aa", e.Hash)
		assert.False(t, e.DeliveredAt.IsZero())

		decoded, err := png.Decode(bytes.NewReader(e.PNG))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())
	})

	t.Run("rejects image without bitmap", func(t *testing.T) {
		t.Parallel()

		err := openGallery(t).Show(context.Background(), &webcollage.Image{URL: "https://example.com/a.png"})
		assert.Equal(t, webcollage.EINVALID, webcollage.ErrorCode(err))
	})

	t.Run("keeps repeated deliveries", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		g := openGallery(t)

		require.NoError(t, g.Show(ctx, testImage("https://example.com/a.png", "aa", 1, 1)))
		require.NoError(t, g.Show(ctx, testImage("https://example.com/b.png", "aa", 1, 1)))

		n, err := g.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestGallery_FindEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := openGallery(t)
	for _, img := range []*webcollage.Image{
		testImage("https://example.com/1.png", "h1", 1, 1),
		testImage("https://example.com/2.png", "h2", 1, 1),
		testImage("https://example.com/3.png", "h1", 1, 1),
	} {
		require.NoError(t, g.Show(ctx, img))
	}

	urls := func(entries []*sqlite.Entry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.URL)
		}
		return out
	}

	t.Run("returns delivery order", func(t *testing.T) {
		t.Parallel()

		entries, err := g.FindEntries(ctx, sqlite.EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/1.png", "https://example.com/2.png", "https://example.com/3.png"}, urls(entries))
	})

	t.Run("filters by hash", func(t *testing.T) {
		t.Parallel()

		hash := "h1"
		entries, err := g.FindEntries(ctx, sqlite.EntryFilter{Hash: &hash})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/1.png", "https://example.com/3.png"}, urls(entries))
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/2.png"
		entries, err := g.FindEntries(ctx, sqlite.EntryFilter{URL: &url})
		require.NoError(t, err)
		assert.Equal(t, []string{url}, urls(entries))
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		entries, err := g.FindEntries(ctx, sqlite.EntryFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/2.png"}, urls(entries))

		entries, err = g.FindEntries(ctx, sqlite.EntryFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/3.png"}, urls(entries))
	})
}

func TestGallery_FindEntryByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := openGallery(t)
	require.NoError(t, g.Show(ctx, testImage("https://example.com/a.png", "aa", 2, 2)))

	entries, err := g.FindEntries(ctx, sqlite.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, err := g.FindEntryByID(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entries[0].URL, got.URL)

	_, err = g.FindEntryByID(ctx, "missing")
	assert.Equal(t, webcollage.ENOTFOUND, webcollage.ErrorCode(err))
}
