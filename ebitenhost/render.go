package ebitenhost

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/cardwave"
)

// GeoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func GeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// CardGeoM returns the GeoM that draws an image of size iw x ih onto the
// layout rectangle r with transform t applied around the rectangle's center.
func CardGeoM(t cardwave.Transform, r cardwave.Rect, iw, ih int, perspective float64) ebiten.GeoM {
	var g ebiten.GeoM
	if iw > 0 && ih > 0 {
		g.Scale(r.Width/float64(iw), r.Height/float64(ih))
	}
	g.Concat(GeoM(t.Affine(r.Width, r.Height, perspective)))
	g.Translate(r.X, r.Y)
	return g
}

func rgba(c [3]float64, a float64) color.Color {
	a = min(max(a, 0), 1)
	return color.NRGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: uint8(a * 255),
	}
}

// drawCardImage draws one card. The card's projected quad is axis-aligned, so
// the halo and border are drawn as rectangles around its bounds.
func drawCardImage(dst, img *ebiten.Image, cf *cardwave.CardFrame, t cardwave.Transform, r cardwave.Rect, perspective, opacity float64) {
	b := img.Bounds()
	geo := CardGeoM(t, r, b.Dx(), b.Dy(), perspective)

	x0, y0 := geo.Apply(float64(b.Min.X), float64(b.Min.Y))
	x1, y1 := geo.Apply(float64(b.Max.X), float64(b.Max.Y))
	qx, qy := float32(min(x0, x1)), float32(min(y0, y1))
	qw, qh := float32(max(x0, x1))-qx, float32(max(y0, y1))-qy

	st := cf.Style
	if st.HaloOpacity > 0 {
		const pad = 12
		vector.DrawFilledRect(dst, qx-pad, qy-pad, qw+2*pad, qh+2*pad,
			rgba(cardwave.ColorViolet, st.HaloOpacity*0.3*opacity), true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = geo
	br := float32(st.Brightness)
	op.ColorScale.Scale(br, br, br, 1)
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)

	if st.BorderAlpha > 0 {
		vector.StrokeRect(dst, qx, qy, qw, qh, 2, rgba(cardwave.ColorCyan, st.BorderAlpha*opacity), true)
	}
	if st.BadgeOpacity > 0 {
		radius := float32(10 * st.BadgeScale)
		vector.DrawFilledCircle(dst, qx, qy, radius, rgba(cardwave.ColorViolet, st.BadgeOpacity*opacity), true)
		ebitenutil.DebugPrintAt(dst, strconv.Itoa(int(cf.ID)), int(qx)-6, int(qy)-8)
	}
}

// lightboxControls are the clickable areas of the open lightbox for a screen
// of the given size.
type lightboxControls struct {
	close, prev, next cardwave.Rect
}

func newLightboxControls(w, h float64) lightboxControls {
	const size = 48
	return lightboxControls{
		close: cardwave.Rect{X: w - size - 16, Y: 16, Width: size, Height: size},
		prev:  cardwave.Rect{X: 16, Y: h/2 - size/2, Width: size, Height: size},
		next:  cardwave.Rect{X: w - size - 16, Y: h/2 - size/2, Width: size, Height: size},
	}
}

// target resolves a click while the lightbox is open. Anything outside the
// controls is the backdrop.
func (c lightboxControls) target(x, y float64) cardwave.ClickTarget {
	switch {
	case c.close.Contains(x, y):
		return cardwave.ClickTarget{Kind: cardwave.TargetClose}
	case c.prev.Contains(x, y):
		return cardwave.ClickTarget{Kind: cardwave.TargetPrev}
	case c.next.Contains(x, y):
		return cardwave.ClickTarget{Kind: cardwave.TargetNext}
	default:
		return cardwave.ClickTarget{Kind: cardwave.TargetBackdrop}
	}
}

// drawLightboxOverlay draws the backdrop, the selected image fitted to the
// screen, the controls, and the "selected / N" counter.
func drawLightboxOverlay(dst, img *ebiten.Image, counter string) {
	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.NRGBA{A: 242}, false)

	b := img.Bounds()
	ih := h * 0.85
	iw := ih * cardwave.CardAspectW / cardwave.CardAspectH
	if iw > w*0.9 {
		iw = w * 0.9
		ih = iw * cardwave.CardAspectH / cardwave.CardAspectW
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(iw/float64(b.Dx()), ih/float64(b.Dy()))
	op.GeoM.Translate((w-iw)/2, (h-ih)/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)

	ctl := newLightboxControls(w, h)
	for _, r := range []cardwave.Rect{ctl.close, ctl.prev, ctl.next} {
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
			color.NRGBA{R: 255, G: 255, B: 255, A: 26}, true)
	}
	ebitenutil.DebugPrintAt(dst, "x", int(ctl.close.X+20), int(ctl.close.Y+16))
	ebitenutil.DebugPrintAt(dst, "<", int(ctl.prev.X+20), int(ctl.prev.Y+16))
	ebitenutil.DebugPrintAt(dst, ">", int(ctl.next.X+20), int(ctl.next.Y+16))
	ebitenutil.DebugPrintAt(dst, counter, 16, 16)
	ebitenutil.DebugPrintAt(dst, "Use <- -> keys to navigate", int(w/2)-78, int(h)-24)
}
