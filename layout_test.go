package cardwave

import (
	"math"
	"testing"
)

func TestGridLayoutBreakpoints(t *testing.T) {
	tests := []struct {
		width   float64
		columns int
		gap     float64
	}{
		{320, 2, 16},
		{640, 3, 16},
		{800, 4, 24},
		{1024, 5, 32},
		{1300, 6, 32},
		{1920, 7, 32},
	}
	for _, tt := range tests {
		l := NewGridLayout(31, Vec2{}, tt.width)
		if l.Columns != tt.columns || l.Gap != tt.gap {
			t.Errorf("width %v: columns/gap = %d/%v, want %d/%v", tt.width, l.Columns, l.Gap, tt.columns, tt.gap)
		}
	}
}

func TestGridLayoutCardSize(t *testing.T) {
	l := NewGridLayout(31, Vec2{}, 432) // 2 columns, 16 gap
	if l.CardW != 208 {
		t.Errorf("CardW = %v, want 208", l.CardW)
	}
	if want := 208.0 * 711 / 400; math.Abs(l.CardH-want) > 1e-9 {
		t.Errorf("CardH = %v, want %v", l.CardH, want)
	}
	if l.Rows() != 16 {
		t.Errorf("Rows = %d, want 16", l.Rows())
	}
}

func TestGridLayoutWithoutBreakpoints(t *testing.T) {
	l := NewGridLayoutWith(nil, 3, Vec2{}, 100)
	if l.Columns != 1 || l.CardW != 100 || l.Rows() != 3 {
		t.Errorf("fallback layout = %+v", l)
	}
}

func TestGridLayoutCardAt(t *testing.T) {
	l := NewGridLayout(5, Vec2{X: 10, Y: 20}, 432)
	second := l.Card(1)

	tests := []struct {
		name   string
		x, y   float64
		want   CardID
		wantOK bool
	}{
		{"first card", 15, 25, 1, true},
		{"gap between columns", 10 + 208 + 8, 25, NoCard, false},
		{"second card", second.X + 1, second.Y + 1, 2, true},
		{"third row", 15, 20 + 2*(l.CardH+16) + 1, 5, true},
		{"empty slot", 10 + 224 + 1, 20 + 2*(l.CardH+16) + 1, NoCard, false},
		{"above", 15, 0, NoCard, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CardAt(tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CardAt(%v, %v) = %d/%v, want %d/%v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGridLayoutBounds(t *testing.T) {
	l := NewGridLayout(5, Vec2{X: 10, Y: 20}, 432)
	b := l.Bounds()
	if b.X != 10 || b.Y != 20 || b.Width != 432 {
		t.Errorf("Bounds origin/width = %v", b)
	}
	if want := 3*l.CardH + 2*16; math.Abs(b.Height-want) > 1e-9 {
		t.Errorf("Bounds height = %v, want %v", b.Height, want)
	}
	if empty := NewGridLayout(0, Vec2{}, 432).Bounds(); !empty.Empty() {
		t.Errorf("empty layout bounds = %v, want empty", empty)
	}
}

func TestGridLayoutLocalPoint(t *testing.T) {
	l := NewGridLayout(4, Vec2{}, 432)
	r := l.Card(1)
	got := l.LocalPoint(2, r.X+r.Width/4, r.Y+r.Height)
	if math.Abs(got.X-0.25) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("LocalPoint = %v, want (0.25, 1)", got)
	}
}
