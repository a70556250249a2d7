package retro

import "strconv"

// PointerKind discriminates PointerID values.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // the single, process-lifetime mouse pointer
	PointerTouch                    // one active touch contact
)

// PointerID is a logical input source: the mouse, or one touch contact keyed
// by the id the input source assigned to it. Touch ids are only unique while
// the contact is active and may be reused after release. PointerID is
// comparable and usable as a map key.
type PointerID struct {
	Kind  PointerKind
	Touch uint64
}

// MousePointer is the identity of the mouse.
var MousePointer = PointerID{Kind: PointerMouse}

// TouchPointer returns the identity of the touch contact with the given id.
func TouchPointer(id uint64) PointerID {
	return PointerID{Kind: PointerTouch, Touch: id}
}

// IsMouse reports whether p identifies the mouse.
func (p PointerID) IsMouse() bool {
	return p.Kind == PointerMouse
}

// TouchID returns the contact id and true for touch pointers.
func (p PointerID) TouchID() (uint64, bool) {
	if p.Kind != PointerTouch {
		return 0, false
	}
	return p.Touch, true
}

func (p PointerID) String() string {
	if p.Kind == PointerMouse {
		return "mouse"
	}
	return "touch:" + strconv.FormatUint(p.Touch, 10)
}

// Entity is the handle of a spawned pointer. Entities are never reused, so a
// handle held past despawn cannot alias a newer pointer with the same id.
type Entity uint32

// Pointer is the per-identity state owned by the pointer manager.
type Pointer struct {
	ID     PointerID
	Entity Entity
	// Position is the last known canvas-space position.
	Position Vec2
	// Delta is the last reported motion delta.
	Delta Vec2
	// HasPosition is false until the pointer's first in-canvas sample.
	HasPosition bool
	// Buttons is the set of buttons currently held.
	Buttons ButtonSet
}

// Pressed reports whether button is currently held on this pointer.
func (p Pointer) Pressed(button PointerButton) bool {
	return p.Buttons.Has(button)
}

// ButtonSet is a bit set of pointer buttons.
type ButtonSet uint8

// Has reports whether b is in the set.
func (s ButtonSet) Has(b PointerButton) bool {
	return b < buttonCount && s&(1<<b) != 0
}

// With returns the set with b added.
func (s ButtonSet) With(b PointerButton) ButtonSet {
	if b >= buttonCount {
		return s
	}
	return s | 1<<b
}

// Without returns the set with b removed.
func (s ButtonSet) Without(b PointerButton) ButtonSet {
	return s &^ (1 << b)
}

// PointerEvent is a canvas-space pointer event delivered to gameplay code.
type PointerEvent struct {
	Type    EventType
	Pointer PointerID
	Entity  Entity
	// Position is the pointer's canvas-space position when the event fired.
	Position Vec2
	// Delta is the motion since the previous sample (EventMove only).
	Delta Vec2
	// Button is the pressed or released button (EventPressDown/EventPressUp).
	Button PointerButton
}

// EntityStore is the interface for optional ECS integration. When set on a
// Canvas, pointer spawns and despawns are mirrored into the store and every
// dispatched event is forwarded to it.
type EntityStore interface {
	SpawnPointer(p Pointer)
	DespawnPointer(p Pointer)
	EmitEvent(event PointerEvent)
}

// pointerRegistry owns every live pointer. active maps an identity to its
// current pointer; live also holds pointers that ended this frame and still
// wait for the cleanup pass.
type pointerRegistry struct {
	active     map[PointerID]*Pointer
	live       map[Entity]*Pointer
	nextEntity Entity
}

func newPointerRegistry() pointerRegistry {
	return pointerRegistry{
		active: make(map[PointerID]*Pointer),
		live:   make(map[Entity]*Pointer),
	}
}

// spawn creates a pointer for id and makes it the active identity.
func (r *pointerRegistry) spawn(id PointerID) *Pointer {
	r.nextEntity++
	p := &Pointer{ID: id, Entity: r.nextEntity}
	r.active[id] = p
	r.live[p.Entity] = p
	return p
}

// deactivate detaches the pointer from its identity without destroying it.
func (r *pointerRegistry) deactivate(p *Pointer) {
	if cur, ok := r.active[p.ID]; ok && cur == p {
		delete(r.active, p.ID)
	}
}

// despawn destroys the pointer. Reports false if it was already gone.
func (r *pointerRegistry) despawn(e Entity) (*Pointer, bool) {
	p, ok := r.live[e]
	if !ok {
		return nil, false
	}
	delete(r.live, e)
	r.deactivate(p)
	return p, true
}
