package cardwave

import "fmt"

// CardID identifies a card in a gallery. Valid ids run from 1 to N, where N
// is the size of the CardSet; the zero value means "no card".
type CardID int

// NoCard is the zero CardID, used for an empty HoverState.
const NoCard CardID = 0

// Index returns the 0-based display index of the card.
func (id CardID) Index() int {
	return int(id) - 1
}

// CardSet is the ordered, fixed sequence of card ids 1..N. Insertion order is
// the display and navigation order.
type CardSet struct {
	n int
}

// NewCardSet creates a CardSet of n cards. It panics if n is not positive.
func NewCardSet(n int) CardSet {
	if n <= 0 {
		panic(fmt.Sprintf("cardwave: card set size %d must be positive", n))
	}
	return CardSet{n: n}
}

// Len returns the number of cards.
func (s CardSet) Len() int {
	return s.n
}

// Contains reports whether id is a member of the set.
func (s CardSet) Contains(id CardID) bool {
	return id >= 1 && int(id) <= s.n
}

// IDs returns the card ids in display order.
func (s CardSet) IDs() []CardID {
	ids := make([]CardID, s.n)
	for i := range ids {
		ids[i] = CardID(i + 1)
	}
	return ids
}

// At returns the id of the card at the given 0-based index.
func (s CardSet) At(index int) CardID {
	return CardID(index + 1)
}

// Next returns the id following id, wrapping from N to 1.
func (s CardSet) Next(id CardID) CardID {
	if int(id) >= s.n {
		return 1
	}
	return id + 1
}

// Prev returns the id preceding id, wrapping from 1 to N.
func (s CardSet) Prev(id CardID) CardID {
	if id <= 1 {
		return CardID(s.n)
	}
	return id - 1
}

// Vec2 is a 2D vector used for pointer positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// AnimationState is the ambient wave position within the current cycle.
type AnimationState struct {
	Progress float64 // in [0, 1)
}

// ActiveIndex returns the 0-based index of the card under the wave.
func (a AnimationState) ActiveIndex(n int) int {
	return ActiveIndex(a.Progress, n)
}

// LightboxState is either closed, or open on a selected card.
// The zero value is closed.
type LightboxState struct {
	Open     bool
	Selected CardID
}

// Closed is the closed LightboxState.
var Closed = LightboxState{}

// OpenOn returns the open LightboxState for id.
func OpenOn(id CardID) LightboxState {
	return LightboxState{Open: true, Selected: id}
}

func (s LightboxState) String() string {
	if !s.Open {
		return "Closed"
	}
	return fmt.Sprintf("Open(%d)", s.Selected)
}

// Key identifies a keyboard key the gallery reacts to.
type Key uint8

const (
	KeyUnknown    Key = iota // any key the gallery ignores
	KeyArrowLeft             // previous card in the lightbox
	KeyArrowRight            // next card in the lightbox
	KeyEscape                // close the lightbox
)

// ParseKey maps a DOM-style key name to a Key.
func ParseKey(name string) Key {
	switch name {
	case "ArrowLeft", "left":
		return KeyArrowLeft
	case "ArrowRight", "right":
		return KeyArrowRight
	case "Escape", "esc":
		return KeyEscape
	default:
		return KeyUnknown
	}
}

func (k Key) String() string {
	switch k {
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// TargetKind identifies what a click landed on.
type TargetKind uint8

const (
	TargetNone     TargetKind = iota // empty space in the gallery
	TargetCard                       // a card in the grid
	TargetBackdrop                   // the lightbox backdrop
	TargetClose                      // the lightbox close control
	TargetPrev                       // the lightbox previous arrow
	TargetNext                       // the lightbox next arrow
)

// ClickTarget is the resolved target of a click.
type ClickTarget struct {
	Kind TargetKind
	Card CardID // valid for TargetCard
}

// CardTarget returns a ClickTarget for a card.
func CardTarget(id CardID) ClickTarget {
	return ClickTarget{Kind: TargetCard, Card: id}
}

// ParseTarget maps a target name ("backdrop", "close", "prev", "next") to a
// ClickTarget. Unknown names resolve to TargetNone.
func ParseTarget(name string) ClickTarget {
	switch name {
	case "backdrop":
		return ClickTarget{Kind: TargetBackdrop}
	case "close":
		return ClickTarget{Kind: TargetClose}
	case "prev":
		return ClickTarget{Kind: TargetPrev}
	case "next":
		return ClickTarget{Kind: TargetNext}
	default:
		return ClickTarget{}
	}
}
