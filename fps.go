package retro

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayText formats the debug overlay contents.
func (c *Canvas) overlayText(fps, tps float64) string {
	cfg := c.applied()
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ncanvas: %vx%v\nzoom: %.3g\npointers: %d",
		fps, tps, cfg.Resolution.X, cfg.Resolution.Y, c.Zoom(), len(c.manager.registry.live))
}

// drawOverlay prints FPS, TPS and canvas stats in the surface's top-left
// corner, outside the canvas so the readout stays legible at any zoom.
func (c *Canvas) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, c.overlayText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}
