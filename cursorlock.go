package retro

import "math"

// CursorWarper is implemented by input sources that can report and move the
// cursor. The cursor lock is applied only when the canvas's source is one.
type CursorWarper interface {
	// CursorPosition returns the cursor in physical-surface pixels, or false
	// if the cursor is not over the surface.
	CursorPosition() (Vec2, bool)
	// WarpCursor moves the cursor to p.
	WarpCursor(p Vec2)
}

// lockBounds returns the surface-space range the cursor is confined to: the
// centred rectangle of the canvas magnified by zoom.
func lockBounds(surface, resolution Vec2, zoom float64) (minX, maxX, minY, maxY float64) {
	w := resolution.X * zoom
	h := resolution.Y * zoom
	return (surface.X - w) / 2, (surface.X + w) / 2,
		(surface.Y - h) / 2, (surface.Y + h) / 2
}

// clampCursor confines pos to the lock bounds. Reports whether it moved.
func clampCursor(pos, surface, resolution Vec2, zoom float64) (Vec2, bool) {
	minX, maxX, minY, maxY := lockBounds(surface, resolution, zoom)
	out := Vec2{
		X: math.Max(minX, math.Min(pos.X, maxX)),
		Y: math.Max(minY, math.Min(pos.Y, maxY)),
	}
	return out, out != pos
}

// lockCursor clamps the source's cursor when the lock is enabled.
func (c *Canvas) lockCursor() {
	if !c.applied().LockCursor {
		return
	}
	w, ok := c.source.(CursorWarper)
	if !ok {
		return
	}
	pos, ok := w.CursorPosition()
	if !ok {
		return
	}
	cfg := c.applied()
	if clamped, moved := clampCursor(pos, c.surface, cfg.Resolution, c.comp.displayCam.Zoom()); moved {
		w.WarpCursor(clamped)
	}
}
