package retro

import "github.com/hajimehoshi/ebiten/v2"

// Injected samples are in physical-surface pixels, exactly like real input,
// and go through the same transform. Each queued frame replaces the input
// source for one Update, so real input is ignored while injected frames
// remain.

// injectFrame returns the last queued frame, creating one if the queue is
// empty.
func (c *Canvas) injectFrame() *InputBatch {
	if len(c.injectQueue) == 0 {
		c.injectQueue = append(c.injectQueue, InputBatch{})
	}
	return &c.injectQueue[len(c.injectQueue)-1]
}

// InjectNextFrame closes the current injected frame; later injections are
// delivered one Update later. It does nothing if the current frame is still
// empty.
func (c *Canvas) InjectNextFrame() {
	if n := len(c.injectQueue); n > 0 && c.injectQueue[n-1].Len() == 0 {
		return
	}
	c.injectQueue = append(c.injectQueue, InputBatch{})
}

// InjectCursorMove queues a mouse move to the given surface position.
func (c *Canvas) InjectCursorMove(x, y float64) {
	f := c.injectFrame()
	f.CursorMoves = append(f.CursorMoves, CursorMoved{Position: Vec2{x, y}})
}

// InjectButton queues a mouse button transition.
func (c *Canvas) InjectButton(button ebiten.MouseButton, pressed bool) {
	f := c.injectFrame()
	f.Buttons = append(f.Buttons, MouseButtonInput{Button: button, Pressed: pressed})
}

// InjectTouch queues a touch sample.
func (c *Canvas) InjectTouch(id uint64, phase TouchPhase, x, y float64) {
	f := c.injectFrame()
	f.Touches = append(f.Touches, TouchInput{ID: id, Phase: phase, Position: Vec2{x, y}})
}

// InjectClick queues a left click at the given surface position: move and
// press in one frame, release in the next. Consumes two frames.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectNextFrame()
	c.InjectCursorMove(x, y)
	c.InjectButton(ebiten.MouseButtonLeft, true)
	c.InjectNextFrame()
	c.InjectButton(ebiten.MouseButtonLeft, false)
}

// InjectDrag queues a left-button mouse drag from (fromX, fromY) to (toX, toY)
// over frames frames: press, frames-2 interpolated moves, release. Minimum
// frames is 2.
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectNextFrame()
	c.InjectCursorMove(fromX, fromY)
	c.InjectButton(ebiten.MouseButtonLeft, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectNextFrame()
		c.InjectCursorMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectNextFrame()
	c.InjectCursorMove(toX, toY)
	c.InjectButton(ebiten.MouseButtonLeft, false)
}

// InjectTap queues a touch contact with the given id that starts and ends at
// the given surface position. Consumes two frames.
func (c *Canvas) InjectTap(id uint64, x, y float64) {
	c.InjectNextFrame()
	c.InjectTouch(id, TouchStarted, x, y)
	c.InjectNextFrame()
	c.InjectTouch(id, TouchEnded, x, y)
}

// PendingInjectedFrames returns the number of injected frames not yet
// consumed.
func (c *Canvas) PendingInjectedFrames() int {
	return len(c.injectQueue)
}
