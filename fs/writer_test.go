package fs_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webcollage"
	"github.com/fwojciec/webcollage/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		hash    string
		want    string
		wantErr bool
	}{
		{
			name: "groups by host",
			url:  "https://example.com/img/a.jpg",
			hash: "00ff",
			want: filepath.Join("example.com", "00ff.png"),
		},
		{
			name: "lowercases host and replaces port separator",
			url:  "http://Example.COM:8080/a.gif",
			hash: "abcd",
			want: filepath.Join("example.com_8080", "abcd.png"),
		},
		{
			name: "ignores query string",
			url:  "https://example.com/a.png?size=large",
			hash: "1234",
			want: filepath.Join("example.com", "1234.png"),
		},
		{
			name:    "rejects missing hash",
			url:     "https://example.com/a.png",
			wantErr: true,
		},
		{
			name:    "rejects malformed URL",
			url:     "http://[::1",
			hash:    "1234",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ImagePath(tt.url, tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_Show(t *testing.T) {
	t.Parallel()

	t.Run("writes a decodable PNG", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		bitmap := image.NewRGBA(image.Rect(0, 0, 3, 2))
		bitmap.Set(1, 1, color.RGBA{G: 255, A: 255})

		w := fs.NewWriter(dir)
		err := w.Show(context.Background(), &webcollage.Image{
			URL:    "https://example.com/pic.jpg",
			Format: "jpeg",
			Bitmap: bitmap,
			Hash:   "cafe",
		})
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(dir, "example.com", "cafe.png"))
		require.NoError(t, err)
		defer f.Close()

		decoded, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, bitmap.Bounds(), decoded.Bounds())
	})

	t.Run("rejects an image without bitmap", func(t *testing.T) {
		t.Parallel()

		err := fs.NewWriter(t.TempDir()).Show(context.Background(), &webcollage.Image{URL: "https://example.com/a.png", Hash: "1"})
		assert.Equal(t, webcollage.EINVALID, webcollage.ErrorCode(err))
	})
}
