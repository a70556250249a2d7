package retro

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// defaultClearColor matches the dark grey a freshly created 2D camera clears to.
var defaultClearColor = Color{43.0 / 255, 44.0 / 255, 47.0 / 255, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, sizes, and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Round returns v with both components rounded to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{math.Round(v.X), math.Round(v.Y)}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Clamp returns (x, y) moved to the nearest point inside the rectangle.
func (r Rect) Clamp(x, y float64) (float64, float64) {
	return math.Max(r.X, math.Min(x, r.X+r.Width)),
		math.Max(r.Y, math.Min(y, r.Y+r.Height))
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// EventType identifies a kind of canvas-space pointer event.
type EventType uint8

const (
	EventMove      EventType = iota // pointer moved; carries position and delta
	EventPressDown                  // a pointer button went down
	EventPressUp                    // a pointer button went up
	EventCancel                     // the gesture was interrupted; abort, do not commit
)

func (e EventType) String() string {
	switch e {
	case EventMove:
		return "move"
	case EventPressDown:
		return "press-down"
	case EventPressUp:
		return "press-up"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerButton identifies a logical pointer button. Touch contacts always
// use ButtonPrimary.
type PointerButton uint8

const (
	ButtonPrimary   PointerButton = iota // left mouse button or a touch contact
	ButtonSecondary                      // right mouse button
	ButtonMiddle                         // middle mouse button (scroll wheel click)

	buttonCount = 3
)

func (b PointerButton) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ClearMode selects how the canvas camera clears the render target each frame.
type ClearMode uint8

const (
	ClearDefault ClearMode = iota // clear to the default dark grey
	ClearCustom                   // clear to ClearColor.Color
	ClearNone                     // keep the previous frame's pixels
)

// ClearColor is the canvas background configuration.
type ClearColor struct {
	Mode  ClearMode
	Color Color
}

// resolve returns the color to fill with and whether a fill should happen.
func (c ClearColor) resolve() (Color, bool) {
	switch c.Mode {
	case ClearCustom:
		return c.Color, true
	case ClearNone:
		return Color{}, false
	default:
		return defaultClearColor, true
	}
}
