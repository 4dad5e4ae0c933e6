// Package ecs provides ECS adapters for goku.
package ecs

import (
	"github.com/phanxgames/goku"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for goku frame events.
// Subscribe to this in your ECS systems to receive moves, landings and
// behaviour results.
var FrameEventType = events.NewEventType[goku.FrameEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Frame events are published to FrameEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) goku.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event goku.FrameEvent) {
	FrameEventType.Publish(s.world, event)
}
