// Package ecs provides ECS adapters for cardwave's gallery events.
//
// The primary adapter is [NewDonburiStore], which bridges gallery events
// (hover enter/leave, clicks, lightbox transitions) into a [Donburi] world as
// typed events. Subscribe to [GalleryEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	gallery.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
