package retro

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is the top-level object that owns the virtual canvas, its two
// cameras, the pointer identities and the per-frame input pipeline.
//
// A frame runs in a fixed order: config and surface sync, cursor lock, raw
// input ingestion, coordinate transform and pointer lifecycle, event dispatch,
// gameplay, then the deferred despawn of ended touch pointers.
type Canvas struct {
	config   *Config
	comp     compositor
	manager  *pointerManager
	settings InputSettings
	source   InputSource
	store    EntityStore
	handlers handlerRegistry
	watcher  *ConfigWatcher
	surface  Vec2
	batch    InputBatch
	frame    uint64
	debug    bool

	overlay bool

	// Injection and scripted testing.
	injectQueue []InputBatch
	testRunner  *TestRunner

	// ScreenshotDir is the directory screenshots are written to. Defaults
	// to "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
}

// NewCanvas creates a canvas with the given config. The render target and
// cameras are created on the first frame after the surface size is known.
func NewCanvas(cfg Config) *Canvas {
	c := &Canvas{
		config:        &cfg,
		manager:       newPointerManager(),
		settings:      DefaultInputSettings(),
		source:        NewEbitenInput(),
		ScreenshotDir: "screenshots",
	}
	c.manager.onSpawn = func(p *Pointer) {
		if c.store != nil {
			c.store.SpawnPointer(*p)
		}
	}
	c.manager.onDespawn = func(p *Pointer) {
		if c.store != nil {
			c.store.DespawnPointer(*p)
		}
	}
	return c
}

// Config returns the live config. Edits through the pointer take effect on
// the next frame.
func (c *Canvas) Config() *Config {
	return c.config
}

// SetConfig replaces the live config. It is applied on the next frame.
func (c *Canvas) SetConfig(cfg Config) {
	*c.config = cfg
}

// applied returns the config the compositor last synced to, or the live
// config before setup.
func (c *Canvas) applied() Config {
	if c.comp.ready {
		return c.comp.applied
	}
	return *c.config
}

// SetSurfaceSize records the physical surface size in pixels. Ebiten hosts
// call it from Layout.
func (c *Canvas) SetSurfaceSize(width, height int) {
	c.surface = Vec2{float64(width), float64(height)}
}

// SurfaceSize returns the last recorded physical surface size.
func (c *Canvas) SurfaceSize() Vec2 {
	return c.surface
}

// Layout implements the ebiten.Game Layout contract: it records the outside
// size as the physical surface and renders at that size.
func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	c.SetSurfaceSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Ready reports whether the render target and cameras exist. Setup happens
// on the first Update after the surface has a positive size.
func (c *Canvas) Ready() bool {
	return c.comp.ready
}

// Frame returns the number of completed Update calls since setup.
func (c *Canvas) Frame() uint64 {
	return c.frame
}

// SetInputSource replaces the raw input source. Passing nil disables polling;
// injected input still works.
func (c *Canvas) SetInputSource(src InputSource) {
	c.source = src
}

// SetInputSettings sets which devices are processed.
func (c *Canvas) SetInputSettings(s InputSettings) {
	c.settings = s
}

// InputSettings returns the current device toggles.
func (c *Canvas) InputSettings() InputSettings {
	return c.settings
}

// SetEntityStore sets the optional ECS bridge. Pointers that are already
// live are spawned into the new store immediately.
func (c *Canvas) SetEntityStore(store EntityStore) {
	c.store = store
	if store == nil {
		return
	}
	for _, p := range c.manager.pointers() {
		store.SpawnPointer(p)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, pointer
// lifecycle, resize and per-frame input stats are logged to stderr.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
	c.comp.debug = enabled
	c.manager.debug = enabled
}

// SetDebugOverlay toggles the on-screen FPS and canvas stats overlay.
func (c *Canvas) SetDebugOverlay(enabled bool) {
	c.overlay = enabled
}

// Update runs one frame. fn is the gameplay stage; it runs after this
// frame's events have been dispatched and before ended pointers are removed,
// so Events and Pointers still reflect them. Update returns fn's error.
func (c *Canvas) Update(fn func() error) error {
	c.pollWatcher()

	if !c.comp.ready {
		if c.surface.X <= 0 || c.surface.Y <= 0 {
			return nil
		}
		c.setup()
	} else {
		c.comp.sync(*c.config, c.surface)
	}

	c.lockCursor()

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.ingest()

	c.manager.beginFrame()
	c.manager.process(&c.batch, &c.comp, c.settings)
	c.dispatch()

	var err error
	if fn != nil {
		err = fn()
	}

	c.manager.cleanup()
	c.debugLog()
	c.frame++
	return err
}

func (c *Canvas) setup() {
	if err := c.config.Validate(); err != nil {
		panic("retro: invalid canvas config: " + err.Error())
	}
	c.comp.setup(*c.config, c.surface)
	c.manager.spawnMouse()
}

// ingest fills the frame batch. Injected input replaces the source for the
// frames it covers.
func (c *Canvas) ingest() {
	c.batch.reset()
	if len(c.injectQueue) > 0 {
		c.batch.append(c.injectQueue[0])
		c.injectQueue[0] = InputBatch{}
		c.injectQueue = c.injectQueue[1:]
		return
	}
	if c.source != nil {
		c.source.Poll(&c.batch)
	}
}

func (c *Canvas) dispatch() {
	for _, ev := range c.manager.events {
		if c.store != nil {
			c.store.EmitEvent(ev)
		}
		c.handlers.dispatch(ev)
	}
}

// Events returns the events produced this frame. The slice is reused on the
// next Update and must not be retained.
func (c *Canvas) Events() []PointerEvent {
	return c.manager.events
}

// Pointer returns a snapshot of the active pointer with the given identity.
// Touch pointers that ended this frame are no longer active.
func (c *Canvas) Pointer(id PointerID) (Pointer, bool) {
	p, ok := c.manager.pointer(id)
	if !ok {
		return Pointer{}, false
	}
	return *p, true
}

// Pointers returns every live pointer ordered by entity, including touch
// pointers that ended this frame and are awaiting removal.
func (c *Canvas) Pointers() []Pointer {
	return c.manager.pointers()
}

// Draw renders the frame. drawScene draws world-space content into target;
// cam.GeoM() maps world coordinates, with the origin at the canvas centre,
// to target pixels.
func (c *Canvas) Draw(screen *ebiten.Image, drawScene func(target *ebiten.Image, cam *Camera)) {
	if !c.comp.ready {
		return
	}
	c.comp.draw(screen, drawScene)
	c.flushScreenshots()
	if c.overlay {
		c.drawOverlay(screen)
	}
}

// Target returns the canvas render target. It panics before setup.
func (c *Canvas) Target() *RenderTarget {
	c.mustBeReady("Target")
	return c.comp.target
}

// CanvasCamera returns the camera that renders into the target. It panics
// before setup.
func (c *Canvas) CanvasCamera() *Camera {
	c.mustBeReady("CanvasCamera")
	return c.comp.canvasCam
}

// DisplayCamera returns the camera that presents the target on the surface.
// It panics before setup.
func (c *Canvas) DisplayCamera() *Camera {
	c.mustBeReady("DisplayCamera")
	return c.comp.displayCam
}

// Zoom returns the current on-screen magnification, or 1 before setup.
func (c *Canvas) Zoom() float64 {
	if !c.comp.ready {
		return 1
	}
	return c.comp.displayCam.Zoom()
}

// CanvasPosition converts a physical-surface pixel to canvas space. It fails
// before setup and for points outside the visible canvas.
func (c *Canvas) CanvasPosition(physical Vec2) (Vec2, bool) {
	if !c.comp.ready {
		return Vec2{}, false
	}
	return c.comp.CanvasPosition(physical)
}

// PhysicalPosition converts a canvas pixel to physical-surface space. It
// panics before setup.
func (c *Canvas) PhysicalPosition(canvas Vec2) Vec2 {
	c.mustBeReady("PhysicalPosition")
	return c.comp.PhysicalPosition(canvas)
}

// VisibleRect returns the physical-surface rectangle the canvas occupies. It
// panics before setup.
func (c *Canvas) VisibleRect() Rect {
	c.mustBeReady("VisibleRect")
	return c.comp.VisibleRect()
}

// Dispose releases the render target and stops an attached config watcher.
func (c *Canvas) Dispose() {
	c.comp.dispose()
	if c.watcher != nil {
		_ = c.watcher.Close()
		c.watcher = nil
	}
}

func (c *Canvas) mustBeReady(op string) {
	if !c.comp.ready {
		panic("retro: " + op + " called before the canvas was set up; the surface size is not known yet")
	}
}
