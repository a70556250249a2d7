package retro

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// compositor owns the render target and the two cameras that present it. The
// canvas camera draws the scene into the target at native resolution; the
// display camera draws the target, magnified, onto the physical surface.
type compositor struct {
	target     *RenderTarget
	canvasCam  *Camera
	displayCam *Camera

	// applied is the config the target and display scale were last built from.
	applied Config
	surface Vec2
	ready   bool
	debug   bool
}

// setup allocates the target and both cameras. The surface must have a
// positive size.
func (c *compositor) setup(cfg Config, surface Vec2) {
	c.target = newRenderTarget(cfg.Resolution)
	c.canvasCam = newCamera(DestinationCanvas, c.target.Bounds())
	c.displayCam = newCamera(DestinationSurface, Rect{Width: surface.X, Height: surface.Y})
	c.displayCam.setScale(ResolveScale(cfg.Resolution, surface, cfg.Scale))
	c.applied = cfg
	c.surface = surface
	c.ready = true

	if c.debug {
		fmt.Fprintf(os.Stderr, "[retro] canvas %dx%d on surface %vx%v, zoom %.4g\n",
			c.target.Width(), c.target.Height(), surface.X, surface.Y, c.displayCam.Zoom())
	}
}

// syncResult reports what a sync pass recomputed.
type syncResult struct {
	configChanged  bool
	surfaceChanged bool
	targetResized  bool
	scaleChanged   bool
}

// sync reacts to config edits and surface resizes. The two triggers are
// checked independently; either one recomputes the display scale.
func (c *compositor) sync(cfg Config, surface Vec2) syncResult {
	var res syncResult

	if cfg != c.applied {
		res.configChanged = true
		if c.target.resize(cfg.Resolution) {
			res.targetResized = true
			c.canvasCam.setViewport(c.target.Bounds())
			if c.debug {
				fmt.Fprintf(os.Stderr, "[retro] render target resized to %dx%d\n",
					c.target.Width(), c.target.Height())
			}
		}
		c.applied = cfg
	}

	if surface != c.surface {
		res.surfaceChanged = true
		c.surface = surface
		c.displayCam.setViewport(Rect{Width: surface.X, Height: surface.Y})
	}

	if res.configChanged || res.surfaceChanged {
		if c.displayCam.setScale(ResolveScale(cfg.Resolution, c.surface, cfg.Scale)) {
			res.scaleChanged = true
			if c.debug {
				fmt.Fprintf(os.Stderr, "[retro] display zoom %.4g (scale %.4g) for surface %vx%v\n",
					c.displayCam.Zoom(), c.displayCam.Scale(), c.surface.X, c.surface.Y)
			}
		}
	}
	return res
}

// CanvasPosition maps a physical-surface pixel to a canvas pixel by inverting
// the display camera and then projecting through the canvas camera. It fails
// when the point is outside the surface or lands in the letterbox.
func (c *compositor) CanvasPosition(physical Vec2) (Vec2, bool) {
	world, ok := c.displayCam.ViewportToWorld(physical)
	if !ok {
		return Vec2{}, false
	}
	return c.canvasCam.WorldToViewport(world)
}

// PhysicalPosition maps a canvas pixel to where it appears on the surface.
func (c *compositor) PhysicalPosition(canvas Vec2) Vec2 {
	return c.displayCam.WorldToScreen(c.canvasCam.ScreenToWorld(canvas))
}

// VisibleRect returns the surface-space rectangle covered by the canvas.
func (c *compositor) VisibleRect() Rect {
	b := c.target.Bounds()
	tl := c.PhysicalPosition(Vec2{b.X, b.Y})
	br := c.PhysicalPosition(Vec2{b.X + b.Width, b.Y + b.Height})
	return Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}

// draw clears the target, lets drawScene render into it through the canvas
// camera, then presents the target on screen with nearest-neighbour sampling.
func (c *compositor) draw(screen *ebiten.Image, drawScene func(target *ebiten.Image, cam *Camera)) {
	c.target.fill(c.applied.Clear)
	if drawScene != nil {
		drawScene(c.target.Image(), c.canvasCam)
	}

	if c.applied.Letterbox.A > 0 {
		screen.Fill(c.applied.Letterbox.RGBA())
	}

	// The quad is centred on the world origin, where the display camera looks.
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(-float64(c.target.Width())/2, -float64(c.target.Height())/2)
	op.GeoM.Concat(c.displayCam.GeoM())
	screen.DrawImage(c.target.Image(), &op)
}

func (c *compositor) dispose() {
	if c.target != nil {
		c.target.dispose()
	}
	c.ready = false
}
