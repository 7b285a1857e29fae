package cardwave

import "fmt"

// KeySource delivers key presses to subscribers. Newer subscribers see keys
// first and may consume them.
type KeySource interface {
	OnKeyDown(fn func(KeyContext) bool) CallbackHandle
}

// Lightbox is the full-screen viewer state machine. It is either closed or
// open on one card of its CardSet, and navigation wraps at both ends.
//
// While open, the lightbox holds a key binding on its KeySource (ArrowLeft,
// ArrowRight, Escape). The binding is acquired on entering the open state and
// released on leaving it.
type Lightbox struct {
	cards   CardSet
	keys    KeySource
	state   LightboxState
	binding CallbackHandle
	bound   bool

	handlers handlerRegistry
}

// NewLightbox creates a closed lightbox over cards. keys may be nil, in which
// case no keyboard binding is made.
func NewLightbox(cards CardSet, keys KeySource) *Lightbox {
	return &Lightbox{cards: cards, keys: keys}
}

// State returns the current state.
func (lb *Lightbox) State() LightboxState {
	return lb.state
}

// IsOpen reports whether the lightbox is showing a card.
func (lb *Lightbox) IsOpen() bool {
	return lb.state.Open
}

// Bound reports whether the lightbox currently holds its key binding.
func (lb *Lightbox) Bound() bool {
	return lb.bound
}

// Open shows card id. Opening on an id outside the card set is a programming
// error and panics.
func (lb *Lightbox) Open(id CardID) {
	if !lb.cards.Contains(id) {
		panic(fmt.Sprintf("cardwave: lightbox open on card %d outside 1..%d", id, lb.cards.Len()))
	}
	lb.transition(OpenOn(id))
}

// Close hides the lightbox. Closing a closed lightbox is a no-op.
func (lb *Lightbox) Close() {
	lb.transition(Closed)
}

// Next moves to the following card, wrapping from N to 1. No-op when closed.
func (lb *Lightbox) Next() {
	if !lb.state.Open {
		return
	}
	lb.transition(OpenOn(lb.cards.Next(lb.state.Selected)))
}

// Prev moves to the preceding card, wrapping from 1 to N. No-op when closed.
func (lb *Lightbox) Prev() {
	if !lb.state.Open {
		return
	}
	lb.transition(OpenOn(lb.cards.Prev(lb.state.Selected)))
}

// HandleKey applies a key press. Reports whether the key was consumed, which
// only happens while open.
func (lb *Lightbox) HandleKey(k Key) bool {
	if !lb.state.Open {
		return false
	}
	switch k {
	case KeyArrowLeft:
		lb.Prev()
	case KeyArrowRight:
		lb.Next()
	case KeyEscape:
		lb.Close()
	default:
		return false
	}
	return true
}

// HandleClick applies a click. A card opens the lightbox; the backdrop and the
// close control close it; the arrows navigate without closing. Reports
// whether the click changed or was consumed by the lightbox.
func (lb *Lightbox) HandleClick(target ClickTarget) bool {
	switch target.Kind {
	case TargetCard:
		if lb.state.Open {
			// The open lightbox covers the grid.
			return true
		}
		lb.Open(target.Card)
	case TargetBackdrop, TargetClose:
		if !lb.state.Open {
			return false
		}
		lb.Close()
	case TargetPrev:
		if !lb.state.Open {
			return false
		}
		lb.Prev()
	case TargetNext:
		if !lb.state.Open {
			return false
		}
		lb.Next()
	default:
		return false
	}
	return true
}

// Counter returns the "selected / N" label shown while open, or "" when
// closed.
func (lb *Lightbox) Counter() string {
	if !lb.state.Open {
		return ""
	}
	return fmt.Sprintf("%d / %d", lb.state.Selected, lb.cards.Len())
}

// OnChange registers fn to receive every state transition.
func (lb *Lightbox) OnChange(fn func(LightboxChange)) CallbackHandle {
	return lb.handlers.onLightbox(fn)
}

// Release drops the key binding and resets to closed without notifying
// OnChange subscribers. Used when the owning view unmounts.
func (lb *Lightbox) Release() {
	lb.state = Closed
	lb.unbind()
}

func (lb *Lightbox) transition(to LightboxState) {
	from := lb.state
	if from == to {
		return
	}
	lb.state = to
	switch {
	case to.Open && !lb.bound:
		lb.bind()
	case !to.Open:
		lb.unbind()
	}
	emit(lb.handlers.lightbox, LightboxChange{From: from, To: to})
}

func (lb *Lightbox) bind() {
	if lb.keys == nil {
		return
	}
	lb.binding = lb.keys.OnKeyDown(func(ctx KeyContext) bool {
		return lb.HandleKey(ctx.Key)
	})
	lb.bound = true
}

func (lb *Lightbox) unbind() {
	if !lb.bound {
		return
	}
	lb.binding.Remove()
	lb.binding = CallbackHandle{}
	lb.bound = false
}
