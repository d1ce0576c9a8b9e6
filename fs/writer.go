// Package fs provides file-based display sinks.
package fs

import (
	"bytes"
	"context"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webcollage"
)

// ImagePath converts an image URL and its content hash to a relative file path.
// Example: https://Example.com:8080/a/b.jpg with hash 0badc0de → example.com_8080/0badc0de.png
func ImagePath(rawURL, hash string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webcollage.Errorf(webcollage.EMALFORMED, "invalid image URL %q: %v", rawURL, err)
	}
	if hash == "" {
		return "", webcollage.Errorf(webcollage.EINVALID, "image hash required")
	}

	host := strings.ToLower(u.Host)
	host = strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(host)
	if host == "" {
		host = "unknown"
	}
	return filepath.Join(host, hash+".png"), nil
}

// Ensure Writer implements webcollage.Sink at compile time.
var _ webcollage.Sink = (*Writer)(nil)

// Writer saves every delivered image as a PNG file under a directory,
// grouped by host. Images with identical bytes share one file.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Show writes the image to disk, re-encoded as PNG.
func (w *Writer) Show(ctx context.Context, img *webcollage.Image) error {
	if img == nil || img.Bitmap == nil {
		return webcollage.Errorf(webcollage.EINVALID, "no bitmap to write")
	}

	relPath, err := ImagePath(img.URL, img.Hash)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Bitmap); err != nil {
		return err
	}
	return os.WriteFile(fullPath, buf.Bytes(), 0644)
}
