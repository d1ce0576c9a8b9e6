package fs

import (
	"context"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fwojciec/webcollage"
	"github.com/fwojciec/webcollage/ximage"
)

// Ensure CollageFile implements webcollage.Sink at compile time.
var _ webcollage.Sink = (*CollageFile)(nil)

// CollageFile draws every delivered image onto a collage and rewrites a
// PNG snapshot of it after each one. The file is replaced atomically, so
// a reader never sees a partial image.
type CollageFile struct {
	collage *ximage.Collage
	path    string
}

// NewCollageFile creates a CollageFile that keeps path up to date.
func NewCollageFile(collage *ximage.Collage, path string) *CollageFile {
	return &CollageFile{collage: collage, path: path}
}

// Show adds the image to the collage and saves the result.
func (f *CollageFile) Show(ctx context.Context, img *webcollage.Image) error {
	if err := f.collage.Show(ctx, img); err != nil {
		return err
	}
	return f.Save()
}

// Save writes the current collage to a temporary file and renames it
// over the target path.
func (f *CollageFile) Save() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, f.collage.Snapshot()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
