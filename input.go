package cardwave

import "slices"

// EventType identifies a kind of gallery event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // fires on every pointer move
	EventPointerEnter                  // fires when the pointer enters a card
	EventPointerLeave                  // fires when the pointer leaves a card
	EventClick                         // fires on a click, card or lightbox control
	EventKeyDown                       // fires on a key press
	EventProgress                      // fires on every wave tick
	EventLightbox                      // fires on every lightbox transition
)

// --- Built-in hit shapes ---

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Event contexts ---

// PointerContext carries pointer data to move/enter/leave handlers.
type PointerContext struct {
	X, Y    float64 // raw pointer position in device pixels
	Pointer Vec2    // normalized offset from the container center
	Card    CardID  // card entered or left; NoCard for moves
}

// ClickContext carries the resolved click target.
type ClickContext struct {
	Target ClickTarget
}

// KeyContext carries a key press. Key handlers return true when they consume
// the key, which stops dispatch to older handlers.
type KeyContext struct {
	Key Key
}

// LightboxChange describes a lightbox transition.
type LightboxChange struct {
	From, To LightboxState
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerRegistry struct {
	pointerMove  []handler[func(PointerContext)]
	pointerEnter []handler[func(PointerContext)]
	pointerLeave []handler[func(PointerContext)]
	click        []handler[func(ClickContext)]
	keyDown      []handler[func(KeyContext) bool]
	progress     []handler[func(float64)]
	lightbox     []handler[func(LightboxChange)]
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventKeyDown:
		h.reg.keyDown = removeHandler(h.reg.keyDown, h.id)
	case EventProgress:
		h.reg.progress = removeHandler(h.reg.progress, h.id)
	case EventLightbox:
		h.reg.lightbox = removeHandler(h.reg.lightbox, h.id)
	}
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event EventType) CallbackHandle {
	r.nextID++
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) onPointerMove(fn func(PointerContext)) CallbackHandle {
	h := r.add(EventPointerMove)
	r.pointerMove = append(r.pointerMove, handler[func(PointerContext)]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onPointerEnter(fn func(PointerContext)) CallbackHandle {
	h := r.add(EventPointerEnter)
	r.pointerEnter = append(r.pointerEnter, handler[func(PointerContext)]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onPointerLeave(fn func(PointerContext)) CallbackHandle {
	h := r.add(EventPointerLeave)
	r.pointerLeave = append(r.pointerLeave, handler[func(PointerContext)]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onClick(fn func(ClickContext)) CallbackHandle {
	h := r.add(EventClick)
	r.click = append(r.click, handler[func(ClickContext)]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onKeyDown(fn func(KeyContext) bool) CallbackHandle {
	h := r.add(EventKeyDown)
	r.keyDown = append(r.keyDown, handler[func(KeyContext) bool]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onProgress(fn func(float64)) CallbackHandle {
	h := r.add(EventProgress)
	r.progress = append(r.progress, handler[func(float64)]{id: h.id, fn: fn})
	return h
}

func (r *handlerRegistry) onLightbox(fn func(LightboxChange)) CallbackHandle {
	h := r.add(EventLightbox)
	r.lightbox = append(r.lightbox, handler[func(LightboxChange)]{id: h.id, fn: fn})
	return h
}

// count returns the number of registered callbacks of every kind.
func (r *handlerRegistry) count() int {
	return len(r.pointerMove) + len(r.pointerEnter) + len(r.pointerLeave) +
		len(r.click) + len(r.keyDown) + len(r.progress) + len(r.lightbox)
}

// emit calls every handler in registration order. The slice is cloned so a
// handler may remove itself or others while dispatch is in progress.
func emit[C any](hs []handler[func(C)], ctx C) {
	if len(hs) == 0 {
		return
	}
	for _, h := range slices.Clone(hs) {
		h.fn(ctx)
	}
}

// emitKey dispatches newest-first and stops at the first handler that
// consumes the key. Reports whether any handler consumed it.
func (r *handlerRegistry) emitKey(ctx KeyContext) bool {
	hs := slices.Clone(r.keyDown)
	for i := len(hs) - 1; i >= 0; i-- {
		if hs[i].fn(ctx) {
			return true
		}
	}
	return false
}

// --- Pointer normalization ---

// NormalizePointer converts a raw pointer position into an offset from the
// container's center, scaled by the container size. A pointer inside the
// container maps into [-0.5, 0.5]²; outside it the offset keeps growing
// linearly. ok is false when the container has no area, in which case the
// pointer event should be ignored.
func NormalizePointer(x, y float64, container Rect) (p Vec2, ok bool) {
	if container.Empty() {
		return Vec2{}, false
	}
	return Vec2{
		X: (x - container.X - container.Width/2) / container.Width,
		Y: (y - container.Y - container.Height/2) / container.Height,
	}, true
}
