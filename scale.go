package retro

import (
	"math"
	"math/bits"
)

// ScaleKind distinguishes the two scale policies.
type ScaleKind uint8

const (
	ScaleAutoFit ScaleKind = iota // fit the canvas to the surface
	ScaleManual                   // use a fixed projection scale
)

// ScaleMode controls how the canvas is magnified onto the physical surface.
// The zero value is AutoFit without pixel-perfect snapping.
type ScaleMode struct {
	Kind ScaleKind
	// PixelPerfect snaps AutoFit magnification to integer power-of-two steps.
	PixelPerfect bool
	// Factor is the projection scale used by ScaleManual (0.5 = 2x magnification).
	Factor float64
}

// AutoFit returns a ScaleMode that fits the canvas to the surface.
func AutoFit(pixelPerfect bool) ScaleMode {
	return ScaleMode{Kind: ScaleAutoFit, PixelPerfect: pixelPerfect}
}

// Manual returns a ScaleMode with a fixed projection scale.
func Manual(factor float64) ScaleMode {
	return ScaleMode{Kind: ScaleManual, Factor: factor}
}

// ResolveScale returns the display camera's orthographic projection scale
// (world units per surface pixel) for a canvas of the given resolution shown
// on a surface of the given size. The on-screen magnification is 1/scale.
//
// AutoFit fits by width when the surface is taller than wide and by height
// otherwise. With PixelPerfect the fit ratio is truncated to an integer n and
// then kept if n is a power of two, or dropped to the power of two below it,
// never going under 1.
//
// Degenerate surfaces (zero or negative size, e.g. a minimised window) resolve
// to 1 so the result is always strictly positive.
func ResolveScale(resolution, surface Vec2, mode ScaleMode) float64 {
	if mode.Kind == ScaleManual {
		return mode.Factor
	}

	var ratio float64
	if surface.X/surface.Y < 1.0 {
		ratio = surface.X / resolution.X
	} else {
		ratio = surface.Y / resolution.Y
	}
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 1
	}

	if !mode.PixelPerfect {
		return 1.0 / ratio
	}

	n := uint32(math.Min(ratio, 1<<31))
	next := nextPowerOfTwo(n)
	step := next
	if next != n {
		step = next / 2
	}
	return 1.0 / math.Max(float64(step), 1.0)
}

// nextPowerOfTwo returns the smallest power of two >= n. Zero maps to one.
func nextPowerOfTwo(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len32(n-1)
}
