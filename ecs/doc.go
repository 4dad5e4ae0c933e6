// Package ecs provides ECS adapters for goku's frame events.
//
// The primary adapter is [NewDonburiStore], which bridges goku frame events
// (committed and rejected moves, landed shapes, behaviour ticks) into a
// [Donburi] world as typed events. Subscribe to [FrameEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
