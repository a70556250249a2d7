package retro

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Destination identifies what a camera renders into.
type Destination uint8

const (
	DestinationCanvas  Destination = iota // the off-screen canvas render target
	DestinationSurface                    // the physical display surface
)

func (d Destination) String() string {
	if d == DestinationCanvas {
		return "canvas"
	}
	return "surface"
}

// Camera is an orthographic 2D projection from world space into a render
// destination. The world origin, where the canvas quad is placed, maps to the
// centre of the viewport, and one world unit spans 1/Scale destination
// pixels. Cameras stay fixed on the origin.
type Camera struct {
	scale       float64
	viewport    Rect
	destination Destination

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// newCamera creates a camera with scale 1 looking at the world origin.
func newCamera(dest Destination, viewport Rect) *Camera {
	return &Camera{
		scale:       1,
		viewport:    viewport,
		destination: dest,
		dirty:       true,
	}
}

// Scale returns the orthographic projection scale (world units per destination pixel).
func (c *Camera) Scale() float64 {
	return c.scale
}

// Zoom returns the on-screen magnification, the inverse of Scale.
func (c *Camera) Zoom() float64 {
	return 1 / c.scale
}

// Viewport returns the destination-space rectangle this camera renders into.
func (c *Camera) Viewport() Rect {
	return c.viewport
}

// Destination reports whether the camera renders into the canvas or the surface.
func (c *Camera) Destination() Destination {
	return c.destination
}

// setScale updates the projection scale. Reports whether it changed.
func (c *Camera) setScale(s float64) bool {
	if s == c.scale {
		return false
	}
	c.scale = s
	c.dirty = true
	return true
}

// setViewport updates the destination rectangle. Reports whether it changed.
func (c *Camera) setViewport(r Rect) bool {
	if r == c.viewport {
		return false
	}
	c.viewport = r
	c.dirty = true
	return true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(1/scale)
// where cx, cy = viewport centre.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	center := c.viewport.Center()
	z := 1 / c.scale
	c.viewMatrix = [6]float64{z, 0, 0, z, center.X, center.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to destination pixel coordinates
// without any bounds check.
func (c *Camera) WorldToScreen(w Vec2) Vec2 {
	c.computeViewMatrix()
	x, y := transformPoint(c.viewMatrix, w.X, w.Y)
	return Vec2{x, y}
}

// ScreenToWorld converts destination pixel coordinates to world coordinates
// without any bounds check.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	c.computeViewMatrix()
	x, y := transformPoint(c.invViewMatrix, p.X, p.Y)
	return Vec2{x, y}
}

// ViewportToWorld inverts the projection for a destination pixel. It fails
// when p lies outside the camera's viewport.
func (c *Camera) ViewportToWorld(p Vec2) (Vec2, bool) {
	if !c.viewport.Contains(p.X, p.Y) {
		return Vec2{}, false
	}
	return c.ScreenToWorld(p), true
}

// WorldToViewport projects a world point into destination pixels. It fails
// when the result lies outside the camera's viewport.
func (c *Camera) WorldToViewport(w Vec2) (Vec2, bool) {
	p := c.WorldToScreen(w)
	if !c.viewport.Contains(p.X, p.Y) {
		return Vec2{}, false
	}
	return p, true
}

// GeoM returns the view transform as an ebiten.GeoM, for drawing world-space
// content into this camera's destination.
func (c *Camera) GeoM() ebiten.GeoM {
	return affineToGeoM(c.computeViewMatrix())
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vp := c.viewport
	x0, y0 := transformPoint(inv, vp.X, vp.Y)
	x1, y1 := transformPoint(inv, vp.X+vp.Width, vp.Y+vp.Height)

	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
