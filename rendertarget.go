package retro

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTarget is the off-screen canvas the canvas camera renders into and the
// display quad samples from. The *RenderTarget handle is stable for the life
// of the Canvas; resizing swaps the backing image, so callers must fetch
// Image() each frame instead of holding on to it. Pixel contents are not
// retained across a resize.
type RenderTarget struct {
	image *ebiten.Image
	w, h  int
}

// newRenderTarget allocates a render target sized to resolution.
func newRenderTarget(resolution Vec2) *RenderTarget {
	w, h := targetSize(resolution)
	return &RenderTarget{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// targetSize rounds a resolution to integer pixel dimensions of at least 1x1.
func targetSize(resolution Vec2) (int, int) {
	w := int(math.Max(math.Round(resolution.X), 1))
	h := int(math.Max(math.Round(resolution.Y), 1))
	return w, h
}

// Image returns the current backing *ebiten.Image.
func (rt *RenderTarget) Image() *ebiten.Image {
	return rt.image
}

// Width returns the target width in pixels.
func (rt *RenderTarget) Width() int {
	return rt.w
}

// Height returns the target height in pixels.
func (rt *RenderTarget) Height() int {
	return rt.h
}

// Bounds returns the target's pixel rectangle in canvas space.
func (rt *RenderTarget) Bounds() Rect {
	return Rect{Width: float64(rt.w), Height: float64(rt.h)}
}

// fill clears the target according to the clear configuration.
func (rt *RenderTarget) fill(clear ClearColor) {
	c, ok := clear.resolve()
	if !ok {
		return
	}
	rt.image.Fill(c.RGBA())
}

// resize deallocates the old image and creates a new one when the rounded
// resolution differs from the current size. Reports whether it reallocated.
func (rt *RenderTarget) resize(resolution Vec2) bool {
	w, h := targetSize(resolution)
	if w == rt.w && h == rt.h && rt.image != nil {
		return false
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(w, h)
	rt.w = w
	rt.h = h
	return true
}

// dispose deallocates the underlying image.
func (rt *RenderTarget) dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}
