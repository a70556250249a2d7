// Package ecs provides ECS adapters for retro's pointer pipeline.
//
// The primary adapter is [NewDonburiStore], which mirrors every live pointer
// (the mouse and each active touch contact) into a [Donburi] world as an
// entity carrying [PointerComponent], and publishes canvas-space pointer
// events as typed events. Subscribe to [PointerEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	canvas.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
