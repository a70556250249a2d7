package ecs

import (
	"github.com/0ec2b5/retro"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerComponent holds the mirrored state of one live retro pointer.
var PointerComponent = donburi.NewComponentType[retro.Pointer]()

// PointerEventType is the Donburi event type for canvas-space pointer events.
// Subscribe to this in your ECS systems to receive move, press and cancel events.
var PointerEventType = events.NewEventType[retro.PointerEvent]()

// DonburiStore mirrors retro pointers into a Donburi world. Each live pointer
// is one entity with a PointerComponent; events update it and are published
// to PointerEventType.
type DonburiStore struct {
	world    donburi.World
	entities map[retro.Entity]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Pointer events are published to PointerEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[retro.Entity]donburi.Entity),
	}
}

// World returns the backing world.
func (s *DonburiStore) World() donburi.World {
	return s.world
}

// Entity returns the Donburi entity for a retro pointer entity.
func (s *DonburiStore) Entity(e retro.Entity) (donburi.Entity, bool) {
	de, ok := s.entities[e]
	return de, ok
}

// Len returns the number of mirrored pointers.
func (s *DonburiStore) Len() int {
	return len(s.entities)
}

func (s *DonburiStore) SpawnPointer(p retro.Pointer) {
	if _, ok := s.entities[p.Entity]; ok {
		return
	}
	de := s.world.Create(PointerComponent)
	PointerComponent.SetValue(s.world.Entry(de), p)
	s.entities[p.Entity] = de
}

func (s *DonburiStore) DespawnPointer(p retro.Pointer) {
	de, ok := s.entities[p.Entity]
	if !ok {
		return
	}
	delete(s.entities, p.Entity)
	if s.world.Valid(de) {
		s.world.Remove(de)
	}
}

func (s *DonburiStore) EmitEvent(event retro.PointerEvent) {
	if de, ok := s.entities[event.Entity]; ok && s.world.Valid(de) {
		ptr := PointerComponent.Get(s.world.Entry(de))
		switch event.Type {
		case retro.EventMove:
			ptr.Position = event.Position
			ptr.Delta = event.Delta
			ptr.HasPosition = true
		case retro.EventPressDown:
			ptr.Buttons = ptr.Buttons.With(event.Button)
		case retro.EventPressUp:
			ptr.Buttons = ptr.Buttons.Without(event.Button)
		}
	}
	PointerEventType.Publish(s.world, event)
}
