// Package retro renders a 2D game into a fixed-resolution virtual canvas and
// presents it, magnified, on a physical surface of any size, for [Ebitengine].
//
// Gameplay code works in canvas pixels. The package owns the off-screen
// render target, the camera that draws into it and the camera that shows it
// on screen, and converts mouse and touch input from surface pixels into
// canvas-space pointer events.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	canvas := retro.NewCanvas(retro.Config{
//		Resolution: retro.Vec2{X: 320, Y: 180},
//		Scale:      retro.AutoFit(true),
//	})
//	retro.Run(canvas, game, retro.RunConfig{Title: "My Game", Resizable: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Canvas.Update], [Canvas.Draw] and [Canvas.Layout] directly.
//
// # Scaling
//
// [ResolveScale] picks the display camera's projection scale. AutoFit fits
// the canvas to the surface, optionally snapped to power-of-two
// magnification with PixelPerfect; Manual uses a fixed factor. The canvas is
// centred and the remaining surface is filled with the letterbox color.
//
// Config is re-read every frame: a changed Resolution resizes the render
// target and a resized window recomputes the scale. [WatchConfig] and
// [Canvas.AttachConfigWatcher] reload a YAML config file as it is edited.
//
// # Pointers
//
// The mouse is one pointer for the life of the canvas. Each touch contact
// gets its own pointer when it starts; it is removed at the end of the frame
// in which the contact ends or is canceled, so gameplay still sees it during
// that frame.
//
// Events are delivered four ways: registered callbacks ([Canvas.OnPressDown]
// and friends), the per-frame [Canvas.Events] slice, pointer snapshots from
// [Canvas.Pointer], and an optional [EntityStore]. The ecs subpackage
// provides a donburi-backed store.
//
//	canvas.OnPressDown(func(ev retro.PointerEvent) {
//		world := canvas.CanvasCamera().ScreenToWorld(ev.Position)
//		// ...
//	})
//
// # Testing
//
// [Canvas.InjectClick], [Canvas.InjectDrag] and [Canvas.InjectTap] queue
// synthetic input in surface pixels. [LoadTestScript] runs a YAML script of
// moves, clicks, touches, resizes and screenshots, one step per frame.
//
// # Debug mode
//
// [Canvas.SetDebugMode] logs pointer spawns and despawns, scale changes and
// per-frame input counts to stderr. [Canvas.SetDebugOverlay] draws FPS and
// canvas stats on screen.
package retro
