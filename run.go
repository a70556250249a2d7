package retro

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the gameplay side of a Run loop.
type Game interface {
	// Update runs once per tick after the canvas has dispatched this frame's
	// pointer events.
	Update(c *Canvas) error
	// DrawCanvas draws world-space content into the canvas render target.
	DrawCanvas(target *ebiten.Image, cam *Camera)
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size. Zero means twice the
	// canvas resolution.
	Width, Height int
	// Resizable lets the user resize the window. The canvas refits on resize.
	Resizable bool
	// HideCursor hides the OS cursor, for games that draw their own.
	HideCursor bool
	// ShowOverlay enables the FPS and canvas stats overlay.
	ShowOverlay bool
}

// Run opens a window and drives canvas and game until the window closes or
// Update returns an error. Returning ebiten.Termination from Update ends the
// loop without an error.
func Run(c *Canvas, game Game, cfg RunConfig) error {
	if c == nil || game == nil {
		panic("retro: Run needs a canvas and a game")
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		res := c.Config().Resolution
		w, h = int(res.X*2), int(res.Y*2)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.HideCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	c.SetDebugOverlay(cfg.ShowOverlay)

	defer c.Dispose()
	return ebiten.RunGame(&host{canvas: c, game: game})
}

// host adapts a Canvas and Game to ebiten.Game.
type host struct {
	canvas *Canvas
	game   Game
}

func (h *host) Update() error {
	return h.canvas.Update(func() error { return h.game.Update(h.canvas) })
}

func (h *host) Draw(screen *ebiten.Image) {
	h.canvas.Draw(screen, h.game.DrawCanvas)
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.canvas.Layout(outsideWidth, outsideHeight)
}
