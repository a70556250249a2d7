package retro

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TouchPhase is the lifecycle stage of one touch sample.
type TouchPhase uint8

const (
	TouchStarted  TouchPhase = iota // the contact went down
	TouchMoved                      // the contact is still down
	TouchEnded                      // the contact lifted
	TouchCanceled                   // the platform aborted the contact
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStarted:
		return "started"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// CursorMoved is a raw mouse position sample in physical-surface pixels.
type CursorMoved struct {
	Position Vec2
}

// MouseButtonInput is a raw mouse button transition.
type MouseButtonInput struct {
	Button  ebiten.MouseButton
	Pressed bool
}

// TouchInput is a raw touch sample in physical-surface pixels. ID is assigned
// by the input source and is unique only while the contact is active.
type TouchInput struct {
	ID       uint64
	Phase    TouchPhase
	Position Vec2
}

// InputBatch holds the raw samples ingested for one frame, in arrival order
// per device.
type InputBatch struct {
	CursorMoves []CursorMoved
	Buttons     []MouseButtonInput
	Touches     []TouchInput
}

// Len returns the total number of samples in the batch.
func (b *InputBatch) Len() int {
	return len(b.CursorMoves) + len(b.Buttons) + len(b.Touches)
}

func (b *InputBatch) reset() {
	b.CursorMoves = b.CursorMoves[:0]
	b.Buttons = b.Buttons[:0]
	b.Touches = b.Touches[:0]
}

func (b *InputBatch) append(o InputBatch) {
	b.CursorMoves = append(b.CursorMoves, o.CursorMoves...)
	b.Buttons = append(b.Buttons, o.Buttons...)
	b.Touches = append(b.Touches, o.Touches...)
}

// InputSource produces the raw samples for one frame. Poll appends to batch
// and must not block.
type InputSource interface {
	Poll(batch *InputBatch)
}

// EbitenInput polls ebiten's mouse and touch state once per tick and converts
// it into raw samples. Ebiten reports no cancel phase; contacts it drops are
// reported as TouchEnded.
type EbitenInput struct {
	lastCursor Vec2
	hasCursor  bool

	// warp replaces the OS cursor position for the next Poll.
	warp    Vec2
	warping bool

	touchIDs     []ebiten.TouchID
	justPressed  []ebiten.TouchID
	justReleased []ebiten.TouchID
}

// NewEbitenInput creates an input source backed by the ebiten input API.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

var polledButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButton3,
	ebiten.MouseButton4,
}

// CursorPosition implements CursorWarper.
func (in *EbitenInput) CursorPosition() (Vec2, bool) {
	mx, my := ebiten.CursorPosition()
	return Vec2{float64(mx), float64(my)}, true
}

// WarpCursor implements CursorWarper. Ebiten cannot move the OS cursor, so the
// warped position is reported in its place on the next Poll. Hosts that lock
// the cursor hide the OS cursor and draw their own at the reported position.
func (in *EbitenInput) WarpCursor(p Vec2) {
	in.warp = p
	in.warping = true
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(batch *InputBatch) {
	pos, _ := in.CursorPosition()
	if in.warping {
		pos = in.warp
		in.warping = false
	}
	if !in.hasCursor || pos != in.lastCursor {
		batch.CursorMoves = append(batch.CursorMoves, CursorMoved{Position: pos})
		in.lastCursor = pos
		in.hasCursor = true
	}

	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			batch.Buttons = append(batch.Buttons, MouseButtonInput{Button: b, Pressed: true})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			batch.Buttons = append(batch.Buttons, MouseButtonInput{Button: b, Pressed: false})
		}
	}

	in.justPressed = inpututil.AppendJustPressedTouchIDs(in.justPressed[:0])
	for _, id := range in.justPressed {
		x, y := ebiten.TouchPosition(id)
		batch.Touches = append(batch.Touches, TouchInput{
			ID: uint64(id), Phase: TouchStarted, Position: Vec2{float64(x), float64(y)},
		})
	}

	// Stationary contacts are reported every tick; the pointer manager drops
	// samples identical to the cached one.
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		if containsTouchID(in.justPressed, id) {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		batch.Touches = append(batch.Touches, TouchInput{
			ID: uint64(id), Phase: TouchMoved, Position: Vec2{float64(x), float64(y)},
		})
	}

	in.justReleased = inpututil.AppendJustReleasedTouchIDs(in.justReleased[:0])
	for _, id := range in.justReleased {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		batch.Touches = append(batch.Touches, TouchInput{
			ID: uint64(id), Phase: TouchEnded, Position: Vec2{float64(x), float64(y)},
		})
	}
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// pointerButton maps a raw mouse button to a pointer button. Back, forward and
// any other extra buttons are not pointer buttons.
func pointerButton(b ebiten.MouseButton) (PointerButton, bool) {
	switch b {
	case ebiten.MouseButtonLeft:
		return ButtonPrimary, true
	case ebiten.MouseButtonRight:
		return ButtonSecondary, true
	case ebiten.MouseButtonMiddle:
		return ButtonMiddle, true
	default:
		return 0, false
	}
}
