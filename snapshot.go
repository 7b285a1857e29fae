package cardwave

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Palette shared by every rendering layer, as RGB in [0, 1].
var (
	ColorBackground = [3]float64{0.02, 0.02, 0.05}
	ColorCard       = [3]float64{0.067, 0.094, 0.153} // gray-900
	ColorCyan       = [3]float64{0, 229.0 / 255, 1}
	ColorViolet     = [3]float64{124.0 / 255, 58.0 / 255, 237.0 / 255}
)

// Snapshot queues a labeled snapshot of the current frame. It is rendered
// with RenderFrame at the end of the next Update and written as a PNG to
// SnapshotDir with a timestamped filename.
func (g *Gallery) Snapshot(label string) {
	g.snapshotQueue = append(g.snapshotQueue, label)
}

// flushSnapshots renders the frame once for every queued label. Called at the
// end of Gallery.Update.
func (g *Gallery) flushSnapshots() {
	if len(g.snapshotQueue) == 0 {
		return
	}
	defer func() { g.snapshotQueue = g.snapshotQueue[:0] }()

	if !g.hasLayout {
		_, _ = fmt.Fprintf(os.Stderr, "[cardwave] snapshot: no layout installed\n")
		return
	}
	if err := os.MkdirAll(g.SnapshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[cardwave] snapshot: mkdir %s: %v\n", g.SnapshotDir, err)
		return
	}

	img := RenderFrame(g.Frame(), g.layout, g.cfg.Perspective, g.lightbox.State(), g.lightbox.Counter())
	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.snapshotQueue {
		path := filepath.Join(g.SnapshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[cardwave] snapshot: %v\n", err)
		}
	}
}

// RenderFrame draws a gallery frame into an image the size of the layout,
// padded by a margin so lifted cards are not clipped. Cards are drawn in
// display order with the glowing card last so it sits on top. While the
// lightbox is open the selected card is drawn enlarged over a dark backdrop
// with its counter label.
func RenderFrame(frame []CardFrame, layout GridLayout, perspective float64, lb LightboxState, counter string) image.Image {
	const margin = 48.0
	bounds := layout.Bounds()
	w := int(bounds.Width + 2*margin)
	h := int(bounds.Height + 2*margin)
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(ColorBackground[0], ColorBackground[1], ColorBackground[2])
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	offX := margin - bounds.X
	offY := margin - bounds.Y

	top := -1
	for i := range frame {
		if frame[i].Hovered || (top < 0 && frame[i].Glow > 0) {
			top = i
		}
	}
	for i := range frame {
		if i != top {
			drawCard(dc, &frame[i], layout, perspective, offX, offY)
		}
	}
	if top >= 0 {
		drawCard(dc, &frame[top], layout, perspective, offX, offY)
	}

	if lb.Open {
		drawLightbox(dc, lb.Selected, counter, float64(w), float64(h))
	}
	return dc.Image()
}

// cardQuad returns the four projected corners of a card, clockwise from the
// top-left.
func cardQuad(cf *CardFrame, layout GridLayout, perspective, offX, offY float64) [4]Vec2 {
	r := layout.Card(cf.ID.Index())
	m := cf.Transform.Affine(r.Width, r.Height, perspective)
	corners := [4]Vec2{{0, 0}, {r.Width, 0}, {r.Width, r.Height}, {0, r.Height}}
	for i, c := range corners {
		x, y := transformPoint(m, c.X, c.Y)
		corners[i] = Vec2{X: x + r.X + offX, Y: y + r.Y + offY}
	}
	return corners
}

func tracePolygon(dc *gg.Context, pts [4]Vec2, grow float64) {
	cx := (pts[0].X + pts[2].X) / 2
	cy := (pts[0].Y + pts[2].Y) / 2
	for i, p := range pts {
		x := p.X + signOf(p.X-cx)*grow
		y := p.Y + signOf(p.Y-cy)*grow
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func signOf(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func drawCard(dc *gg.Context, cf *CardFrame, layout GridLayout, perspective, offX, offY float64) {
	quad := cardQuad(cf, layout, perspective, offX, offY)
	st := cf.Style

	if st.HaloOpacity > 0 {
		tracePolygon(dc, quad, 12)
		dc.SetRGBA(ColorViolet[0], ColorViolet[1], ColorViolet[2], st.HaloOpacity*0.3)
		dc.Fill()
	}

	tracePolygon(dc, quad, 0)
	b := st.Brightness
	dc.SetRGB(ColorCard[0]*b, ColorCard[1]*b, ColorCard[2]*b)
	dc.FillPreserve()
	dc.SetLineWidth(2)
	dc.SetRGBA(ColorCyan[0], ColorCyan[1], ColorCyan[2], st.BorderAlpha)
	dc.Stroke()

	if st.BadgeOpacity > 0 {
		radius := 10 * st.BadgeScale
		dc.DrawCircle(quad[0].X, quad[0].Y, radius)
		dc.SetRGBA(ColorViolet[0], ColorViolet[1], ColorViolet[2], st.BadgeOpacity)
		dc.Fill()
		dc.SetRGBA(1, 1, 1, st.BadgeOpacity)
		dc.DrawStringAnchored(strconv.Itoa(int(cf.ID)), quad[0].X, quad[0].Y, 0.5, 0.35)
	}
}

func drawLightbox(dc *gg.Context, selected CardID, counter string, w, h float64) {
	dc.SetRGBA(0, 0, 0, 0.95)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	ch := h * 0.8
	cw := ch * CardAspectW / CardAspectH
	x := (w - cw) / 2
	y := (h - ch) / 2
	dc.DrawRoundedRectangle(x, y, cw, ch, 12)
	dc.SetRGB(ColorCard[0], ColorCard[1], ColorCard[2])
	dc.FillPreserve()
	dc.SetLineWidth(3)
	dc.SetRGBA(ColorCyan[0], ColorCyan[1], ColorCyan[2], 0.6)
	dc.Stroke()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(strconv.Itoa(int(selected)), w/2, h/2, 0.5, 0.5)
	dc.DrawStringAnchored(counter, 16, 20, 0, 0.5)
	dc.DrawStringAnchored("<", 16, h/2, 0, 0.5)
	dc.DrawStringAnchored(">", w-16, h/2, 1, 0.5)
	dc.DrawStringAnchored("x", w-16, 20, 1, 0.5)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
