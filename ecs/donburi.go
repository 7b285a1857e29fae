package ecs

import (
	"github.com/phanxgames/cardwave"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GalleryEventType is the Donburi event type for gallery events.
// Subscribe to this in your ECS systems to receive hover, click, and
// lightbox events.
var GalleryEventType = events.NewEventType[cardwave.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Gallery events are published to GalleryEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) cardwave.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event cardwave.Event) {
	GalleryEventType.Publish(s.world, event)
}
