package retro

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// newTestCanvas returns a canvas that has completed setup on the given
// surface, with the ebiten input source removed.
func newTestCanvas(t *testing.T, cfg Config, width, height int) *Canvas {
	t.Helper()
	c := NewCanvas(cfg)
	c.SetInputSource(nil)
	c.SetSurfaceSize(width, height)
	if err := c.Update(nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !c.Ready() {
		t.Fatal("canvas not ready after first Update")
	}
	t.Cleanup(c.Dispose)
	return c
}

func pixelPerfect(w, h float64) Config {
	cfg := DefaultConfig()
	cfg.Resolution = Vec2{w, h}
	cfg.Scale = AutoFit(true)
	return cfg
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s did not panic", name)
			return
		}
		if s, ok := r.(string); !ok || !strings.HasPrefix(s, "retro: ") {
			t.Errorf("%s panic = %v, want a retro: message", name, r)
		}
	}()
	fn()
}

// recordingStore is an EntityStore that records every call.
type recordingStore struct {
	spawned   []Pointer
	despawned []Pointer
	events    []PointerEvent
}

func (s *recordingStore) SpawnPointer(p Pointer)   { s.spawned = append(s.spawned, p) }
func (s *recordingStore) DespawnPointer(p Pointer) { s.despawned = append(s.despawned, p) }
func (s *recordingStore) EmitEvent(ev PointerEvent) {
	s.events = append(s.events, ev)
}

func TestCanvasSetupDeferredUntilSurfaceKnown(t *testing.T) {
	c := NewCanvas(pixelPerfect(480, 270))
	c.SetInputSource(nil)

	for i := 0; i < 3; i++ {
		if err := c.Update(nil); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if c.Ready() {
		t.Fatal("canvas set up without a surface size")
	}
	if c.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", c.Frame())
	}

	c.SetSurfaceSize(1920, 0)
	_ = c.Update(nil)
	if c.Ready() {
		t.Fatal("canvas set up on a zero-height surface")
	}

	c.SetSurfaceSize(1920, 1080)
	_ = c.Update(nil)
	defer c.Dispose()
	if !c.Ready() {
		t.Fatal("canvas not set up once the surface is known")
	}
	if c.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", c.Frame())
	}
}

func TestCanvasAccessorsBeforeSetup(t *testing.T) {
	c := NewCanvas(DefaultConfig())

	assertPanics(t, "Target", func() { c.Target() })
	assertPanics(t, "CanvasCamera", func() { c.CanvasCamera() })
	assertPanics(t, "DisplayCamera", func() { c.DisplayCamera() })
	assertPanics(t, "PhysicalPosition", func() { c.PhysicalPosition(Vec2{}) })
	assertPanics(t, "VisibleRect", func() { c.VisibleRect() })

	if c.Zoom() != 1 {
		t.Errorf("Zoom before setup = %v, want 1", c.Zoom())
	}
	if _, ok := c.CanvasPosition(Vec2{10, 10}); ok {
		t.Error("CanvasPosition before setup should fail")
	}
	// Draw before setup is a no-op.
	c.Draw(nil, nil)
}

func TestCanvasInvalidConfigPanicsAtSetup(t *testing.T) {
	c := NewCanvas(Config{Resolution: Vec2{0, 100}})
	c.SetInputSource(nil)
	c.SetSurfaceSize(640, 480)
	assertPanics(t, "Update", func() { _ = c.Update(nil) })
}

func TestCanvasSetupState(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)

	if w, h := c.Target().Width(), c.Target().Height(); w != 480 || h != 270 {
		t.Errorf("target = %dx%d, want 480x270", w, h)
	}
	assertNear(t, "Zoom", c.Zoom(), 4)
	assertNear(t, "display Scale", c.DisplayCamera().Scale(), 0.25)
	assertNear(t, "canvas Scale", c.CanvasCamera().Scale(), 1)
	if c.CanvasCamera().Destination() != DestinationCanvas {
		t.Error("canvas camera should render into the canvas")
	}
	if c.DisplayCamera().Destination() != DestinationSurface {
		t.Error("display camera should render onto the surface")
	}

	r := c.VisibleRect()
	if r != (Rect{0, 0, 1920, 1080}) {
		t.Errorf("VisibleRect = %v, want full surface", r)
	}
}

func TestCanvasLetterboxedVisibleRect(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1000, 1080)

	assertNear(t, "Zoom", c.Zoom(), 2)
	r := c.VisibleRect()
	assertNear(t, "X", r.X, 20)
	assertNear(t, "Y", r.Y, 270)
	assertNear(t, "Width", r.Width, 960)
	assertNear(t, "Height", r.Height, 540)
}

func TestCanvasPositionRoundTrip(t *testing.T) {
	surfaces := [][2]int{{1920, 1080}, {1000, 1080}, {700, 1080}, {1366, 768}}
	for _, pp := range []bool{true, false} {
		for _, s := range surfaces {
			cfg := pixelPerfect(480, 270)
			cfg.Scale = AutoFit(pp)
			c := newTestCanvas(t, cfg, s[0], s[1])
			r := c.VisibleRect()

			for fx := 0.05; fx < 1; fx += 0.15 {
				for fy := 0.05; fy < 1; fy += 0.15 {
					phys := Vec2{r.X + r.Width*fx, r.Y + r.Height*fy}
					if !c.DisplayCamera().Viewport().Contains(phys.X, phys.Y) {
						continue
					}
					cp, ok := c.CanvasPosition(phys)
					if !ok {
						t.Fatalf("surface %v pp=%v: CanvasPosition(%v) failed inside %v", s, pp, phys, r)
					}
					back := c.PhysicalPosition(cp)
					if math.Abs(back.X-phys.X) > 1e-6 || math.Abs(back.Y-phys.Y) > 1e-6 {
						t.Errorf("surface %v pp=%v: round trip %v -> %v -> %v", s, pp, phys, cp, back)
					}
				}
			}
		}
	}
}

func TestCanvasPositionLetterboxFails(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1000, 1080)

	tests := []struct {
		name string
		p    Vec2
		ok   bool
		want Vec2
	}{
		{"canvas top-left", Vec2{20, 270}, true, Vec2{0, 0}},
		{"canvas centre", Vec2{500, 540}, true, Vec2{240, 135}},
		{"canvas bottom-right", Vec2{980, 810}, true, Vec2{480, 270}},
		{"left letterbox", Vec2{10, 540}, false, Vec2{}},
		{"top letterbox", Vec2{500, 100}, false, Vec2{}},
		{"bottom letterbox", Vec2{500, 1000}, false, Vec2{}},
		{"off surface", Vec2{-1, 540}, false, Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.CanvasPosition(tt.p)
			if ok != tt.ok {
				t.Fatalf("CanvasPosition(%v) ok = %v, want %v", tt.p, ok, tt.ok)
			}
			if ok {
				assertNear(t, "x", got.X, tt.want.X)
				assertNear(t, "y", got.Y, tt.want.Y)
			}
		})
	}
}

func TestCanvasResolutionChangeAppliesNextFrame(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)
	target := c.Target()

	err := c.Update(func() error {
		c.Config().Resolution = Vec2{320, 180}
		if target.Width() != 480 {
			t.Errorf("target resized mid-frame to %d", target.Width())
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if target.Width() != 480 || target.Height() != 270 {
		t.Errorf("target = %dx%d before the next frame, want 480x270", target.Width(), target.Height())
	}

	_ = c.Update(nil)
	if c.Target() != target {
		t.Error("RenderTarget handle changed across a resize")
	}
	if target.Width() != 320 || target.Height() != 180 {
		t.Errorf("target = %dx%d, want 320x180", target.Width(), target.Height())
	}
	if b := target.Image().Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("image bounds = %v, want 320x180", b)
	}
	if vp := c.CanvasCamera().Viewport(); vp != (Rect{Width: 320, Height: 180}) {
		t.Errorf("canvas viewport = %v, want 320x180", vp)
	}
	// 1080/180 = 6, snapped down to 4.
	assertNear(t, "Zoom", c.Zoom(), 4)
}

func TestCanvasScaleModeChangeKeepsTarget(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1000, 1080)
	img := c.Target().Image()

	c.Config().Scale = AutoFit(false)
	_ = c.Update(nil)

	if c.Target().Image() != img {
		t.Error("scale mode change reallocated the target")
	}
	assertNear(t, "Zoom", c.Zoom(), 1000.0/480.0)
}

func TestCanvasSurfaceResizeRescales(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)
	img := c.Target().Image()

	c.SetSurfaceSize(960, 540)
	_ = c.Update(nil)
	assertNear(t, "Zoom", c.Zoom(), 2)
	if vp := c.DisplayCamera().Viewport(); vp != (Rect{Width: 960, Height: 540}) {
		t.Errorf("display viewport = %v, want 960x540", vp)
	}
	if c.Target().Image() != img {
		t.Error("surface resize reallocated the target")
	}

	// A minimised window falls back to scale 1.
	c.SetSurfaceSize(0, 0)
	_ = c.Update(nil)
	assertNear(t, "Zoom", c.Zoom(), 1)
}

func TestCanvasLayoutRecordsSurface(t *testing.T) {
	c := NewCanvas(DefaultConfig())
	w, h := c.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %d, %d; want 800, 600", w, h)
	}
	if c.SurfaceSize() != (Vec2{800, 600}) {
		t.Errorf("SurfaceSize = %v, want 800x600", c.SurfaceSize())
	}
}

func TestCanvasUpdateReturnsGameplayError(t *testing.T) {
	c := newTestCanvas(t, DefaultConfig(), 640, 576)
	want := errors.New("boom")
	if err := c.Update(func() error { return want }); err != want {
		t.Errorf("Update = %v, want %v", err, want)
	}
}

func TestCanvasInjectedClickReachesHandlers(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)

	var got []PointerEvent
	record := func(ev PointerEvent) { got = append(got, ev) }
	c.OnPointerMove(record)
	c.OnPressDown(record)
	c.OnPressUp(record)

	c.InjectClick(960, 540)
	_ = c.Update(nil)
	if len(got) != 2 || got[0].Type != EventMove || got[1].Type != EventPressDown {
		t.Fatalf("frame 1 events = %v, want move, press-down", got)
	}
	if got[0].Position != (Vec2{240, 135}) {
		t.Errorf("Move position = %v, want (240,135)", got[0].Position)
	}
	if p, _ := c.Pointer(MousePointer); !p.Pressed(ButtonPrimary) {
		t.Error("mouse should hold primary after press")
	}

	_ = c.Update(nil)
	if len(got) != 3 || got[2].Type != EventPressUp {
		t.Fatalf("frame 2 events = %v, want press-up", got)
	}
	if c.PendingInjectedFrames() != 0 {
		t.Errorf("PendingInjectedFrames = %d, want 0", c.PendingInjectedFrames())
	}
}

func TestCanvasEventsReflectFrame(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)
	c.InjectCursorMove(100, 100)

	var inFrame int
	_ = c.Update(func() error {
		inFrame = len(c.Events())
		return nil
	})
	if inFrame != 1 {
		t.Errorf("events during gameplay = %d, want 1", inFrame)
	}

	_ = c.Update(nil)
	if len(c.Events()) != 0 {
		t.Errorf("events on an idle frame = %d, want 0", len(c.Events()))
	}
}

func TestCanvasTouchLifecycleWithStore(t *testing.T) {
	store := &recordingStore{}
	c := NewCanvas(pixelPerfect(480, 270))
	c.SetInputSource(nil)
	c.SetEntityStore(store)
	c.SetSurfaceSize(1920, 1080)
	_ = c.Update(nil)
	defer c.Dispose()

	if len(store.spawned) != 1 || !store.spawned[0].ID.IsMouse() {
		t.Fatalf("spawned after setup = %+v, want the mouse", store.spawned)
	}

	c.InjectTap(3, 960, 540)
	_ = c.Update(nil)
	if len(store.spawned) != 2 || store.spawned[1].ID != TouchPointer(3) {
		t.Fatalf("spawned = %+v, want mouse and touch:3", store.spawned)
	}

	id := TouchPointer(3)
	var during []Pointer
	var active bool
	_ = c.Update(func() error {
		during = c.Pointers()
		_, active = c.Pointer(id)
		return nil
	})
	if active {
		t.Error("ended touch pointer still active during its last frame")
	}
	if touchCount(during) != 1 {
		t.Errorf("touch pointers during the end frame = %d, want 1", touchCount(during))
	}
	if len(store.despawned) != 1 || store.despawned[0].ID != id {
		t.Fatalf("despawned = %+v, want touch:3", store.despawned)
	}
	if touchCount(c.Pointers()) != 0 {
		t.Errorf("touch pointers after cleanup = %d, want 0", touchCount(c.Pointers()))
	}

	want := []EventType{EventMove, EventPressDown, EventPressUp}
	if got := eventTypes(store.events); !equalTypes(got, want) {
		t.Errorf("store events = %v, want %v", got, want)
	}
}

func TestCanvasSetEntityStoreReplaysLivePointers(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)
	c.InjectTouch(1, TouchStarted, 100, 100)
	_ = c.Update(nil)

	store := &recordingStore{}
	c.SetEntityStore(store)
	if len(store.spawned) != 2 {
		t.Fatalf("replayed = %d, want mouse and touch", len(store.spawned))
	}
	if !store.spawned[0].ID.IsMouse() || store.spawned[1].ID != TouchPointer(1) {
		t.Errorf("replayed = %+v", store.spawned)
	}
}

func TestCanvasTouchDisabledStillDrains(t *testing.T) {
	c := newTestCanvas(t, pixelPerfect(480, 270), 1920, 1080)
	c.InjectTouch(1, TouchStarted, 100, 100)
	_ = c.Update(nil)

	c.SetInputSettings(InputSettings{MouseEnabled: true})
	c.manager.schedule(c.manager.registry.active[TouchPointer(1)])
	_ = c.Update(nil)

	if touchCount(c.Pointers()) != 0 {
		t.Errorf("touch pointers = %d, want 0", touchCount(c.Pointers()))
	}
	if c.InputSettings().TouchEnabled {
		t.Error("TouchEnabled should be off")
	}
}

func TestCanvasInjectionReplacesSource(t *testing.T) {
	src := &fakeSource{moves: []Vec2{{500, 500}}}
	c := NewCanvas(pixelPerfect(480, 270))
	c.SetInputSource(src)
	c.SetSurfaceSize(1920, 1080)
	_ = c.Update(nil)
	defer c.Dispose()
	polls := src.polls

	c.InjectCursorMove(100, 100)
	_ = c.Update(nil)
	if src.polls != polls {
		t.Error("source polled while an injected frame was queued")
	}
	_ = c.Update(nil)
	if src.polls != polls+1 {
		t.Errorf("polls = %d, want %d", src.polls, polls+1)
	}
}

func TestClearColorResolve(t *testing.T) {
	red := Color{1, 0, 0, 1}
	tests := []struct {
		name  string
		clear ClearColor
		want  Color
		fill  bool
	}{
		{"default", ClearColor{}, defaultClearColor, true},
		{"custom", ClearColor{Mode: ClearCustom, Color: red}, red, true},
		{"none", ClearColor{Mode: ClearNone, Color: red}, Color{}, false},
	}
	for _, tt := range tests {
		got, fill := tt.clear.resolve()
		if got != tt.want || fill != tt.fill {
			t.Errorf("%s: resolve() = %v, %v; want %v, %v", tt.name, got, fill, tt.want, tt.fill)
		}
	}
}
