package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/cardwave"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Padding is the margin in px around the card grid.
	Padding float64

	// Images returns the image of a card. Cards without an image are drawn
	// as solid panels.
	Images func(id cardwave.CardID) *ebiten.Image
}

// Run mounts g, opens a window, and drives the gallery until the window is
// closed. The gallery is unmounted on every return path.
func Run(g *cardwave.Gallery, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Padding <= 0 {
		cfg.Padding = 32
	}

	h := newHost(g, cfg)
	if err := g.Mount(time.Now()); err != nil {
		return fmt.Errorf("run gallery: %w", err)
	}
	defer g.Unmount()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}

// host implements ebiten.Game for a gallery. It is the rendering layer: it
// turns ebiten input into gallery events, and gallery frames into draw calls,
// easing each card toward its computed transform.
type host struct {
	g   *cardwave.Gallery
	cfg RunConfig

	width, height int
	cursorX       int
	cursorY       int

	motions   []*cardwave.CardMotion
	entrances []*cardwave.Entrance
	offsets   []cardwave.Transform
	opacity   []float64
	frame     []cardwave.CardFrame
	panel     *ebiten.Image

	fpsElapsed float64
	fpsLabel   string
}

func newHost(g *cardwave.Gallery, cfg RunConfig) *host {
	n := g.Cards().Len()
	h := &host{g: g, cfg: cfg, cursorX: -1, cursorY: -1}
	h.motions = make([]*cardwave.CardMotion, n)
	h.entrances = make([]*cardwave.Entrance, n)
	h.offsets = make([]cardwave.Transform, n)
	h.opacity = make([]float64, n)
	for i := range n {
		h.motions[i] = cardwave.NewCardMotion(cardwave.IdentityTransform)
		h.entrances[i] = cardwave.NewEntrance(i)
	}
	return h
}

// Layout implements ebiten.Game. The gallery re-flows whenever the window
// width changes.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width {
		pad := h.cfg.Padding
		h.g.SetLayout(cardwave.NewGridLayout(h.g.Cards().Len(), cardwave.Vec2{X: pad, Y: pad}, float64(outsideWidth)-2*pad))
		h.g.SetViewportWidth(float64(outsideWidth))
	}
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (h *host) Update() error {
	h.readInput()
	h.g.Update(time.Now())

	dt := float32(1.0 / float64(ebiten.TPS()))
	h.frame = h.g.AppendFrame(h.frame[:0])
	for i := range h.frame {
		h.motions[i].Update(h.frame[i].Transform, dt)
		h.offsets[i], h.opacity[i] = h.entrances[i].Update(dt)
	}

	if h.cfg.ShowFPS {
		h.fpsElapsed += float64(dt)
		if h.fpsElapsed >= 0.5 {
			h.fpsElapsed = 0
			h.fpsLabel = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
	return nil
}

func (h *host) readInput() {
	x, y := ebiten.CursorPosition()
	if x != h.cursorX || y != h.cursorY {
		h.cursorX, h.cursorY = x, y
		h.g.PointerMove(float64(x), float64(y))
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		fx, fy := float64(x), float64(y)
		if h.g.Lightbox().IsOpen() {
			h.g.Click(newLightboxControls(float64(h.width), float64(h.height)).target(fx, fy))
		} else {
			h.g.ClickAt(fx, fy)
		}
	}

	for _, k := range []struct {
		key ebiten.Key
		to  cardwave.Key
	}{
		{ebiten.KeyArrowLeft, cardwave.KeyArrowLeft},
		{ebiten.KeyArrowRight, cardwave.KeyArrowRight},
		{ebiten.KeyEscape, cardwave.KeyEscape},
	} {
		if inpututil.IsKeyJustPressed(k.key) {
			h.g.KeyDown(k.to)
		}
	}
}

func (h *host) image(id cardwave.CardID) *ebiten.Image {
	if h.cfg.Images != nil {
		if img := h.cfg.Images(id); img != nil {
			return img
		}
	}
	if h.panel == nil {
		h.panel = ebiten.NewImage(cardwave.CardAspectW/10, cardwave.CardAspectH/10)
		h.panel.Fill(rgba(cardwave.ColorCard, 1))
	}
	return h.panel
}

// Draw implements ebiten.Game.
func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 5, G: 5, B: 13, A: 255})

	layout, ok := h.g.Layout()
	if !ok {
		return
	}
	perspective := h.g.Config().Perspective

	top := -1
	for i := range h.frame {
		if h.frame[i].Hovered || (top < 0 && h.frame[i].Glow > 0) {
			top = i
		}
	}
	draw := func(i int) {
		cf := &h.frame[i]
		t := h.motions[i].Current.Then(h.offsets[i])
		if cf.Hovered {
			t = t.Then(h.g.HoverTilt())
		}
		drawCardImage(screen, h.image(cf.ID), cf, t, layout.Card(i), perspective, h.opacity[i])
	}
	for i := range h.frame {
		if i != top {
			draw(i)
		}
	}
	if top >= 0 {
		draw(top)
	}

	if lb := h.g.Lightbox().State(); lb.Open {
		drawLightboxOverlay(screen, h.image(lb.Selected), h.g.Lightbox().Counter())
	}
	if h.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, h.fpsLabel, 4, h.height-36)
	}
}
