package retro

// --- Handler registry ---

const eventTypeCount = int(EventCancel) + 1

type eventHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

func (r *handlerRegistry) add(t EventType, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// dispatch calls every handler registered for the event's type in
// registration order. A handler removed by an earlier handler in the same
// dispatch does not fire.
func (r *handlerRegistry) dispatch(ev PointerEvent) {
	if int(ev.Type) >= eventTypeCount {
		return
	}
	hs := r.byType[ev.Type]
	for i := 0; i < len(hs); i++ {
		h := hs[i]
		h.fn(ev)
		// Re-read in case the handler removed itself or another entry.
		hs = r.byType[ev.Type]
		if i < len(hs) && hs[i].id != h.id {
			i--
		}
	}
}

// CallbackHandle allows removing a registered canvas-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= eventTypeCount {
		return
	}
	h.reg.byType[h.event] = removeEventHandler(h.reg.byType[h.event], h.id)
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Canvas-level event registration ---

// OnPointerMove registers a callback for canvas-space pointer motion.
func (c *Canvas) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(EventMove, fn)
}

// OnPressDown registers a callback fired when a pointer button goes down.
func (c *Canvas) OnPressDown(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(EventPressDown, fn)
}

// OnPressUp registers a callback fired when a pointer button goes up. Touch
// contacts that are canceled also fire PressUp, followed by Cancel.
func (c *Canvas) OnPressUp(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(EventPressUp, fn)
}

// OnCancel registers a callback fired when a touch gesture is interrupted.
// Consumers should abort whatever the gesture started instead of committing it.
func (c *Canvas) OnCancel(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(EventCancel, fn)
}
