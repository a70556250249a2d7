package retro

import (
	"cmp"
	"fmt"
	"os"
	"slices"
)

// InputSettings toggles which raw devices the pointer manager processes. A
// host that feeds pointers from another source disables the built-in ones.
type InputSettings struct {
	MouseEnabled bool
	TouchEnabled bool
}

// DefaultInputSettings enables both mouse and touch processing.
func DefaultInputSettings() InputSettings {
	return InputSettings{MouseEnabled: true, TouchEnabled: true}
}

// projector maps physical-surface pixels into canvas space.
type projector interface {
	CanvasPosition(physical Vec2) (Vec2, bool)
}

// pendingDespawn is one entry of the deferred despawn set. Using the pair as
// a map key collapses repeated end samples for the same contact.
type pendingDespawn struct {
	entity Entity
	id     PointerID
}

// lifecycleStats counts per-frame work for debug logging.
type lifecycleStats struct {
	samples int
	emitted int
	dropped int
	spawned int
	removed int
}

// pointerManager creates, updates and destroys pointer identities from raw
// samples and produces canvas-space events.
type pointerManager struct {
	registry   pointerRegistry
	mouse      *Pointer
	touchCache map[uint64]TouchInput
	pending    map[pendingDespawn]struct{}
	events     []PointerEvent
	stats      lifecycleStats

	// onSpawn runs as soon as a pointer exists, before any event that
	// references it is produced.
	onSpawn   func(p *Pointer)
	onDespawn func(p *Pointer)
	debug     bool
}

func newPointerManager() *pointerManager {
	m := &pointerManager{
		registry:   newPointerRegistry(),
		touchCache: make(map[uint64]TouchInput),
		pending:    make(map[pendingDespawn]struct{}),
	}
	return m
}

// spawnMouse creates the process-lifetime mouse pointer. Calling it again is
// a no-op.
func (m *pointerManager) spawnMouse() {
	if m.mouse != nil {
		return
	}
	m.mouse = m.spawn(MousePointer)
}

func (m *pointerManager) spawn(id PointerID) *Pointer {
	p := m.registry.spawn(id)
	m.stats.spawned++
	if m.debug {
		fmt.Fprintf(os.Stderr, "[retro] spawning pointer %s (entity %d)\n", id, p.Entity)
	}
	if m.onSpawn != nil {
		m.onSpawn(p)
	}
	return p
}

func (m *pointerManager) emit(ev PointerEvent) {
	m.events = append(m.events, ev)
	m.stats.emitted++
}

// beginFrame discards the previous frame's events and counters.
func (m *pointerManager) beginFrame() {
	m.events = m.events[:0]
	m.stats = lifecycleStats{}
}

// process runs the mouse and touch policies over one frame of raw input.
func (m *pointerManager) process(batch *InputBatch, proj projector, settings InputSettings) {
	m.stats.samples += batch.Len()
	if settings.TouchEnabled {
		m.processTouch(batch.Touches, proj)
	}
	if settings.MouseEnabled {
		m.processMouse(batch, proj)
	}
}

func (m *pointerManager) processMouse(batch *InputBatch, proj projector) {
	m.spawnMouse()
	p := m.mouse

	for _, mv := range batch.CursorMoves {
		pos, ok := proj.CanvasPosition(mv.Position)
		if !ok {
			m.stats.dropped++
			continue
		}
		var delta Vec2
		if p.HasPosition {
			delta = pos.Sub(p.Position)
		}
		p.Position = pos
		p.Delta = delta
		p.HasPosition = true
		m.emit(PointerEvent{Type: EventMove, Pointer: p.ID, Entity: p.Entity, Position: pos, Delta: delta})
	}

	for _, in := range batch.Buttons {
		b, ok := pointerButton(in.Button)
		if !ok {
			continue
		}
		typ := EventPressUp
		if in.Pressed {
			typ = EventPressDown
			p.Buttons = p.Buttons.With(b)
		} else {
			p.Buttons = p.Buttons.Without(b)
		}
		m.emit(PointerEvent{Type: typ, Pointer: p.ID, Entity: p.Entity, Position: p.Position, Button: b})
	}
}

func (m *pointerManager) processTouch(touches []TouchInput, proj projector) {
	for _, t := range touches {
		id := TouchPointer(t.ID)

		switch t.Phase {
		case TouchStarted:
			pos, ok := proj.CanvasPosition(t.Position)
			if !ok {
				m.stats.dropped++
				continue
			}
			if stale, ok := m.registry.active[id]; ok {
				// The source reused an id whose end we never saw.
				m.schedule(stale)
			}
			p := m.spawn(id)
			p.Position = pos
			p.HasPosition = true
			p.Buttons = p.Buttons.With(ButtonPrimary)
			m.emit(PointerEvent{Type: EventMove, Pointer: id, Entity: p.Entity, Position: pos})
			m.emit(PointerEvent{Type: EventPressDown, Pointer: id, Entity: p.Entity, Position: pos, Button: ButtonPrimary})
			m.touchCache[t.ID] = t

		case TouchMoved:
			last, ok := m.touchCache[t.ID]
			if !ok {
				continue
			}
			if last.Position == t.Position {
				continue
			}
			p, ok := m.registry.active[id]
			if !ok {
				continue
			}
			pos, ok := proj.CanvasPosition(t.Position)
			if !ok {
				m.stats.dropped++
				continue
			}
			delta := t.Position.Sub(last.Position)
			p.Position = pos
			p.Delta = delta
			m.emit(PointerEvent{Type: EventMove, Pointer: id, Entity: p.Entity, Position: pos, Delta: delta})
			m.touchCache[t.ID] = t

		case TouchEnded, TouchCanceled:
			delete(m.touchCache, t.ID)
			p, ok := m.registry.active[id]
			if !ok {
				continue
			}
			p.Buttons = p.Buttons.Without(ButtonPrimary)
			m.emit(PointerEvent{Type: EventPressUp, Pointer: id, Entity: p.Entity, Position: p.Position, Button: ButtonPrimary})
			if t.Phase == TouchCanceled {
				m.emit(PointerEvent{Type: EventCancel, Pointer: id, Entity: p.Entity, Position: p.Position})
			}
			m.schedule(p)
		}
	}
}

// schedule adds p to the deferred despawn set and detaches it from its
// identity so a later Start with the same id gets a fresh pointer.
func (m *pointerManager) schedule(p *Pointer) {
	m.pending[pendingDespawn{entity: p.Entity, id: p.ID}] = struct{}{}
	m.registry.deactivate(p)
}

// cleanup drains the deferred despawn set, destroying each entry once.
func (m *pointerManager) cleanup() {
	for key := range m.pending {
		delete(m.pending, key)
		p, ok := m.registry.despawn(key.entity)
		if !ok {
			continue
		}
		m.stats.removed++
		if m.debug {
			fmt.Fprintf(os.Stderr, "[retro] despawning pointer %s (entity %d)\n", key.id, key.entity)
		}
		if m.onDespawn != nil {
			m.onDespawn(p)
		}
	}
}

// pointer returns the active pointer for id.
func (m *pointerManager) pointer(id PointerID) (*Pointer, bool) {
	p, ok := m.registry.active[id]
	return p, ok
}

// pointers returns a snapshot of every live pointer, including those waiting
// for cleanup, ordered by entity.
func (m *pointerManager) pointers() []Pointer {
	out := make([]Pointer, 0, len(m.registry.live))
	for _, p := range m.registry.live {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Pointer) int { return cmp.Compare(a.Entity, b.Entity) })
	return out
}
