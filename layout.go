package cardwave

import "math"

// Card images are portrait screenshots at 400x711.
const (
	CardAspectW = 400
	CardAspectH = 711
)

// Breakpoint selects the grid density for viewports at least MinWidth wide.
type Breakpoint struct {
	MinWidth float64
	Columns  int
	Gap      float64
}

// DefaultBreakpoints go from 2 columns on phones to 7 on wide desktops,
// widest first.
var DefaultBreakpoints = []Breakpoint{
	{MinWidth: 1536, Columns: 7, Gap: 32},
	{MinWidth: 1280, Columns: 6, Gap: 32},
	{MinWidth: 1024, Columns: 5, Gap: 32},
	{MinWidth: 768, Columns: 4, Gap: 24},
	{MinWidth: 640, Columns: 3, Gap: 16},
	{MinWidth: 0, Columns: 2, Gap: 16},
}

// GridLayout places N cards in rows inside a container.
type GridLayout struct {
	Origin  Vec2
	Width   float64
	Columns int
	Gap     float64
	CardW   float64
	CardH   float64
	cards   int
}

// NewGridLayout lays out n cards in a container of the given width whose
// top-left corner is origin, using DefaultBreakpoints.
func NewGridLayout(n int, origin Vec2, width float64) GridLayout {
	return NewGridLayoutWith(DefaultBreakpoints, n, origin, width)
}

// NewGridLayoutWith is NewGridLayout with custom breakpoints. Breakpoints are
// matched widest first; if none matches, a single column is used.
func NewGridLayoutWith(bps []Breakpoint, n int, origin Vec2, width float64) GridLayout {
	bp := Breakpoint{Columns: 1}
	for _, b := range bps {
		if width >= b.MinWidth && b.Columns > 0 {
			bp = b
			break
		}
	}
	l := GridLayout{
		Origin:  origin,
		Width:   math.Max(width, 0),
		Columns: bp.Columns,
		Gap:     bp.Gap,
		cards:   max(n, 0),
	}
	l.CardW = math.Max((l.Width-l.Gap*float64(l.Columns-1))/float64(l.Columns), 0)
	l.CardH = l.CardW * CardAspectH / CardAspectW
	return l
}

// Rows returns the number of rows the cards occupy.
func (l GridLayout) Rows() int {
	if l.cards == 0 {
		return 0
	}
	return (l.cards + l.Columns - 1) / l.Columns
}

// Bounds returns the container rectangle that encloses every card. Pointer
// parallax is normalized against it.
func (l GridLayout) Bounds() Rect {
	rows := l.Rows()
	h := 0.0
	if rows > 0 {
		h = float64(rows)*l.CardH + float64(rows-1)*l.Gap
	}
	return Rect{X: l.Origin.X, Y: l.Origin.Y, Width: l.Width, Height: h}
}

// Card returns the untransformed rectangle of the card at a 0-based index.
func (l GridLayout) Card(index int) Rect {
	col := index % l.Columns
	row := index / l.Columns
	return Rect{
		X:      l.Origin.X + float64(col)*(l.CardW+l.Gap),
		Y:      l.Origin.Y + float64(row)*(l.CardH+l.Gap),
		Width:  l.CardW,
		Height: l.CardH,
	}
}

// CardAt returns the card under (x, y), if any. Hit testing uses the layout
// rectangles, not the animated transforms, so a lifting card cannot steal the
// pointer from its neighbour.
func (l GridLayout) CardAt(x, y float64) (CardID, bool) {
	if l.CardW <= 0 {
		return NoCard, false
	}
	for i := 0; i < l.cards; i++ {
		r := l.Card(i)
		hit := HitRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		if hit.Contains(x, y) {
			return CardID(i + 1), true
		}
	}
	return NoCard, false
}

// LocalPoint maps (x, y) into the unit square of card id.
func (l GridLayout) LocalPoint(id CardID, x, y float64) Vec2 {
	r := l.Card(id.Index())
	if r.Empty() {
		return Vec2{X: 0.5, Y: 0.5}
	}
	return Vec2{X: (x - r.X) / r.Width, Y: (y - r.Y) / r.Height}
}
