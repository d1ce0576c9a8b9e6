package ximage

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/fwojciec/webcollage"
	xdraw "golang.org/x/image/draw"
)

// Default collage geometry.
const (
	DefaultWidth  = 1200
	DefaultHeight = 900
)

// DefaultBackground is the light gray the canvas is cleared to.
var DefaultBackground = color.RGBA{R: 220, G: 220, B: 220, A: 255}

// Ensure Collage implements webcollage.Sink at compile time.
var _ webcollage.Sink = (*Collage)(nil)

// Collage is an in-memory display surface. Every image shown is scaled
// down to at most maxScale of the canvas per axis and drawn centred on a
// random point, so up to half of it may fall outside the canvas.
// It is safe for concurrent use.
type Collage struct {
	mu         sync.Mutex
	canvas     *image.RGBA
	background color.Color
	maxScale   float64
	rand       *rand.Rand
	count      int
}

// CollageOption configures a Collage.
type CollageOption func(*Collage)

// WithMaxScale sets the largest fraction of the canvas, per axis, one image may cover.
func WithMaxScale(f float64) CollageOption {
	return func(c *Collage) {
		c.maxScale = f
	}
}

// WithBackground sets the canvas color used by Clear.
func WithBackground(bg color.Color) CollageOption {
	return func(c *Collage) {
		c.background = bg
	}
}

// WithRand sets the source of placement positions.
func WithRand(r *rand.Rand) CollageOption {
	return func(c *Collage) {
		c.rand = r
	}
}

// NewCollage creates a cleared canvas of the given size.
func NewCollage(width, height int, opts ...CollageOption) *Collage {
	c := &Collage{
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
		background: DefaultBackground,
		maxScale:   webcollage.DefaultMaxScale,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Clear()
	return c
}

// Show draws the image onto the canvas.
func (c *Collage) Show(_ context.Context, img *webcollage.Image) error {
	if img == nil || img.Bitmap == nil {
		return webcollage.Errorf(webcollage.EINVALID, "no bitmap to show")
	}
	c.Add(img.Bitmap)
	return nil
}

// Add draws src onto the canvas and returns where it was placed.
func (c *Collage) Add(src image.Image) image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()

	bounds := c.canvas.Bounds()
	w, h := FitSize(src.Bounds().Dx(), src.Bounds().Dy(), bounds.Dx(), bounds.Dy(), c.maxScale)

	x := int(float64(bounds.Dx())*c.rand.Float64()) - w/2
	y := int(float64(bounds.Dy())*c.rand.Float64()) - h/2
	dst := image.Rect(x, y, x+w, y+h)

	xdraw.CatmullRom.Scale(c.canvas, dst, src, src.Bounds(), xdraw.Over, nil)
	c.count++
	return dst
}

// Clear repaints the whole canvas with the background color.
func (c *Collage) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.canvas, c.canvas.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	c.count = 0
}

// Snapshot returns a copy of the canvas.
func (c *Collage) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.canvas.Bounds())
	copy(out.Pix, c.canvas.Pix)
	return out
}

// Count returns the number of images drawn since the last Clear.
func (c *Collage) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// FitSize scales a w x h image uniformly so that neither side exceeds
// maxScale of the canvas. Images that already fit keep their size.
func FitSize(w, h, canvasW, canvasH int, maxScale float64) (int, int) {
	limitW := int(math.Round(float64(canvasW) * maxScale))
	limitH := int(math.Round(float64(canvasH) * maxScale))

	xscale, yscale := 1.0, 1.0
	if w > limitW {
		xscale = float64(limitW) / float64(w)
	}
	if h > limitH {
		yscale = float64(limitH) / float64(h)
	}
	if xscale < 1 || yscale < 1 {
		scale := min(xscale, yscale)
		w = max(int(math.Round(scale*float64(w))), 1)
		h = max(int(math.Round(scale*float64(h))), 1)
	}
	return w, h
}
