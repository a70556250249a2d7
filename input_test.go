package retro

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointerButtonMapping(t *testing.T) {
	tests := []struct {
		in   ebiten.MouseButton
		want PointerButton
		ok   bool
	}{
		{ebiten.MouseButtonLeft, ButtonPrimary, true},
		{ebiten.MouseButtonRight, ButtonSecondary, true},
		{ebiten.MouseButtonMiddle, ButtonMiddle, true},
		{ebiten.MouseButton3, 0, false},
		{ebiten.MouseButton4, 0, false},
	}
	for _, tt := range tests {
		got, ok := pointerButton(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("pointerButton(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInputBatch(t *testing.T) {
	var b InputBatch
	b.append(InputBatch{
		CursorMoves: []CursorMoved{{Vec2{1, 2}}},
		Touches:     []TouchInput{{ID: 1}, {ID: 2}},
	})
	b.append(InputBatch{Buttons: []MouseButtonInput{{Button: ebiten.MouseButtonLeft, Pressed: true}}})
	if b.Len() != 4 {
		t.Errorf("Len = %d, want 4", b.Len())
	}
	b.reset()
	if b.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", b.Len())
	}
}

func TestContainsTouchID(t *testing.T) {
	ids := []ebiten.TouchID{3, 5, 9}
	if !containsTouchID(ids, 5) || containsTouchID(ids, 4) || containsTouchID(nil, 1) {
		t.Error("containsTouchID gave a wrong answer")
	}
}

func TestEbitenInputWarpOverridesNextPoll(t *testing.T) {
	in := NewEbitenInput()
	in.WarpCursor(Vec2{12, 34})
	if !in.warping || in.warp != (Vec2{12, 34}) {
		t.Fatalf("warp = %v, %v", in.warp, in.warping)
	}
	var _ CursorWarper = in
	var _ InputSource = in
}

func TestTouchPhaseString(t *testing.T) {
	for phase, want := range map[TouchPhase]string{
		TouchStarted: "started", TouchMoved: "moved", TouchEnded: "ended", TouchCanceled: "canceled",
	} {
		if got := phase.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", phase, got, want)
		}
	}
}
