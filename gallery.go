package cardwave

import (
	"errors"
	"fmt"
	"time"
)

// ErrMounted is returned by Mount on a gallery that is already mounted.
var ErrMounted = errors.New("gallery already mounted")

// EventSink is the interface for optional ECS integration.
// When set on a Gallery, hover, click, and lightbox events are forwarded.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries gallery event data for the ECS bridge.
type Event struct {
	Type     EventType
	Card     CardID         // EventPointerEnter, EventPointerLeave, EventClick
	Target   ClickTarget    // EventClick
	Lightbox LightboxChange // EventLightbox
	Progress float64        // wave progress when the event fired
}

// CardFrame is everything the rendering layer needs to draw one card for one
// frame.
type CardFrame struct {
	ID        CardID
	Glow      float64
	Hovered   bool
	Transform Transform
	Style     CardStyle
	Image     string
}

// Gallery owns the state of one mounted gallery view: the wave clock, pointer
// offset, hovered card, and lightbox. All mutation happens from the host's
// single update loop through the frame queue and the event entry points, so
// no locking is needed and readers always see the last committed state.
//
// State lives from Mount to Unmount. Every listener and the frame loop taken
// in Mount is released in Unmount, or immediately if Mount fails part-way.
type Gallery struct {
	cfg      Config
	cards    CardSet
	wave     *WaveScheduler
	comp     *Compositor
	lightbox *Lightbox
	frames   FrameQueue

	pointer    Vec2
	hover      CardID
	hoverLocal Vec2
	container  Rect
	layout     GridLayout
	hasLayout  bool
	viewport   float64

	handlers handlerRegistry
	mounted  bool
	releases []func()

	// MountHook, if set, runs at the end of Mount after every resource has
	// been acquired. An error or panic from it unwinds the mount.
	MountHook func(g *Gallery) error

	store EventSink
	debug bool
	stats debugStats

	testRunner    *TestRunner
	injectQueue   []syntheticEvent
	snapshotQueue []string

	// SnapshotDir is the directory where queued snapshots are written.
	SnapshotDir string
}

// NewGallery creates an unmounted gallery from a validated config.
func NewGallery(cfg Config) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new gallery: %w", err)
	}
	g := &Gallery{
		cfg:         cfg,
		cards:       NewCardSet(cfg.Cards),
		wave:        NewWaveScheduler(cfg.Cards, cfg.PerCard),
		comp:        &Compositor{Config: cfg.Compositor, Envelope: cfg.Envelope},
		debug:       cfg.Debug,
		SnapshotDir: "snapshots",
	}
	g.lightbox = NewLightbox(g.cards, g)
	return g, nil
}

// Config returns the gallery's configuration.
func (g *Gallery) Config() Config { return g.cfg }

// Cards returns the gallery's card set.
func (g *Gallery) Cards() CardSet { return g.cards }

// Lightbox returns the gallery's lightbox controller.
func (g *Gallery) Lightbox() *Lightbox { return g.lightbox }

// Wave returns the gallery's wave scheduler.
func (g *Gallery) Wave() *WaveScheduler { return g.wave }

// Compositor returns the compositor used for card transforms.
func (g *Gallery) Compositor() *Compositor { return g.comp }

// Frames returns the frame queue the host advances once per frame.
func (g *Gallery) Frames() *FrameQueue { return &g.frames }

// Pointer returns the normalized pointer offset.
func (g *Gallery) Pointer() Vec2 { return g.pointer }

// Hover returns the hovered card, or NoCard.
func (g *Gallery) Hover() CardID { return g.hover }

// Progress returns the last published wave progress.
func (g *Gallery) Progress() float64 { return g.wave.State().Progress }

// Mounted reports whether the gallery is between Mount and Unmount.
func (g *Gallery) Mounted() bool { return g.mounted }

// SetEntityStore sets the optional ECS bridge.
func (g *Gallery) SetEntityStore(store EventSink) {
	g.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame stats
// and listener leak reports are written to stderr.
func (g *Gallery) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// SetContainer sets the reference rectangle pointer offsets are normalized
// against. A zero rectangle means no container: pointer moves are ignored.
func (g *Gallery) SetContainer(r Rect) {
	g.container = r
}

// SetLayout installs a grid layout. Its bounds become the container, and
// pointer moves hit-test its cards to drive hover enter/leave.
func (g *Gallery) SetLayout(l GridLayout) {
	g.layout = l
	g.hasLayout = true
	g.container = l.Bounds()
}

// Layout returns the installed grid layout, if any.
func (g *Gallery) Layout() (GridLayout, bool) {
	return g.layout, g.hasLayout
}

// SetViewportWidth records the window width; hovered-card inner tilt only
// applies to viewports at least 768px wide.
func (g *Gallery) SetViewportWidth(w float64) {
	g.viewport = w
}

// --- Subscriptions ---

// OnPointerMove registers a callback for pointer move events.
func (g *Gallery) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return g.handlers.onPointerMove(fn)
}

// OnPointerEnter registers a callback for the pointer entering a card.
func (g *Gallery) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return g.handlers.onPointerEnter(fn)
}

// OnPointerLeave registers a callback for the pointer leaving a card.
func (g *Gallery) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return g.handlers.onPointerLeave(fn)
}

// OnClick registers a callback for click events.
func (g *Gallery) OnClick(fn func(ClickContext)) CallbackHandle {
	return g.handlers.onClick(fn)
}

// OnKeyDown registers a key callback. Newer callbacks run first; returning
// true consumes the key.
func (g *Gallery) OnKeyDown(fn func(KeyContext) bool) CallbackHandle {
	return g.handlers.onKeyDown(fn)
}

// ListenerCount returns the number of registered callbacks on the gallery,
// its wave scheduler, and its lightbox.
func (g *Gallery) ListenerCount() int {
	return g.handlers.count() + g.wave.Subscribers() + g.lightbox.handlers.count()
}

// --- Lifecycle ---

// Mount starts the view at now: it registers the pointer, hover, and click
// listeners, forwards lightbox changes, and starts the wave frame loop. If any
// step fails or panics, everything acquired so far is released before Mount
// returns.
func (g *Gallery) Mount(now time.Time) (err error) {
	if g.mounted {
		return ErrMounted
	}
	g.mounted = true

	defer func() {
		if r := recover(); r != nil {
			g.unwind()
			panic(r)
		}
		if err != nil {
			g.unwind()
		}
	}()

	g.acquire(g.OnPointerMove(g.trackPointer).Remove)
	g.acquire(g.OnPointerEnter(func(ctx PointerContext) { g.setHover(ctx.Card) }).Remove)
	g.acquire(g.OnPointerLeave(func(ctx PointerContext) {
		if g.hover == ctx.Card {
			g.setHover(NoCard)
		}
	}).Remove)
	g.acquire(g.OnClick(func(ctx ClickContext) { g.lightbox.HandleClick(ctx.Target) }).Remove)
	g.acquire(g.lightbox.OnChange(g.forwardLightbox).Remove)
	g.acquire(g.wave.Run(&g.frames, now))
	g.acquire(g.lightbox.Release)

	if g.MountHook != nil {
		if err := g.MountHook(g); err != nil {
			return fmt.Errorf("mount gallery: %w", err)
		}
	}
	return nil
}

// Unmount releases every listener and cancels the pending frame, leaving the
// gallery ready to be mounted again. Unmounting an unmounted gallery is a
// no-op.
func (g *Gallery) Unmount() {
	if !g.mounted {
		return
	}
	g.unwind()
	if g.debug {
		debugCheckLeaks(g)
	}
}

func (g *Gallery) acquire(release func()) {
	g.releases = append(g.releases, release)
}

// unwind runs releases in reverse acquisition order and resets view state.
func (g *Gallery) unwind() {
	for i := len(g.releases) - 1; i >= 0; i-- {
		g.releases[i]()
	}
	clear(g.releases)
	g.releases = g.releases[:0]
	g.pointer = Vec2{}
	g.hover = NoCard
	g.hoverLocal = Vec2{}
	g.injectQueue = g.injectQueue[:0]
	g.mounted = false
}

// Update is called once per host frame: it feeds scripted input, then runs
// every pending frame callback (the wave tick among them).
func (g *Gallery) Update(now time.Time) {
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInjected()

	if !g.debug {
		g.frames.Advance(now)
	} else {
		t0 := time.Now()
		g.frames.Advance(now)
		g.recordFrame(time.Since(t0))
	}
	g.flushSnapshots()
}

// --- Event entry points ---

// PointerMove feeds a raw pointer position in device pixels. With a layout
// installed it also drives hover enter/leave.
func (g *Gallery) PointerMove(x, y float64) {
	if !g.mounted {
		return
	}
	emit(g.handlers.pointerMove, PointerContext{X: x, Y: y})

	if !g.hasLayout || g.lightbox.IsOpen() {
		return
	}
	id, _ := g.layout.CardAt(x, y)
	if id != g.hover {
		if g.hover != NoCard {
			g.PointerLeave(g.hover)
		}
		if id != NoCard {
			g.PointerEnter(id)
		}
	}
	if g.hover != NoCard {
		g.hoverLocal = g.layout.LocalPoint(g.hover, x, y)
	}
}

// PointerEnter reports the pointer entering card id. Ignored while the
// lightbox covers the grid.
func (g *Gallery) PointerEnter(id CardID) {
	if !g.mounted || !g.cards.Contains(id) || g.lightbox.IsOpen() {
		return
	}
	emit(g.handlers.pointerEnter, PointerContext{Card: id, Pointer: g.pointer})
}

// PointerLeave reports the pointer leaving card id.
func (g *Gallery) PointerLeave(id CardID) {
	if !g.mounted {
		return
	}
	emit(g.handlers.pointerLeave, PointerContext{Card: id, Pointer: g.pointer})
}

// Click reports a click on a resolved target.
func (g *Gallery) Click(target ClickTarget) {
	if !g.mounted {
		return
	}
	emit(g.handlers.click, ClickContext{Target: target})
	g.emitEvent(Event{Type: EventClick, Card: target.Card, Target: target})
}

// ClickAt resolves a click at (x, y): while the lightbox is open anything not
// resolved by the host as a control is the backdrop; otherwise the card under
// the point, if any.
func (g *Gallery) ClickAt(x, y float64) {
	if g.lightbox.IsOpen() {
		g.Click(ClickTarget{Kind: TargetBackdrop})
		return
	}
	if !g.hasLayout {
		return
	}
	if id, ok := g.layout.CardAt(x, y); ok {
		g.Click(CardTarget(id))
	}
}

// KeyDown reports a key press. Reports whether a handler consumed it.
func (g *Gallery) KeyDown(k Key) bool {
	if !g.mounted || k == KeyUnknown {
		return false
	}
	return g.handlers.emitKey(KeyContext{Key: k})
}

func (g *Gallery) trackPointer(ctx PointerContext) {
	p, ok := NormalizePointer(ctx.X, ctx.Y, g.container)
	if !ok {
		return
	}
	g.pointer = p
}

func (g *Gallery) setHover(id CardID) {
	if g.hover == id {
		return
	}
	prev := g.hover
	g.hover = id
	if prev != NoCard {
		g.emitEvent(Event{Type: EventPointerLeave, Card: prev})
	}
	if id != NoCard {
		g.emitEvent(Event{Type: EventPointerEnter, Card: id})
	} else {
		g.hoverLocal = Vec2{}
	}
}

func (g *Gallery) forwardLightbox(ch LightboxChange) {
	if ch.To.Open {
		// The modal covers the grid; the pointer is no longer over a card.
		g.setHover(NoCard)
	}
	g.emitEvent(Event{Type: EventLightbox, Card: ch.To.Selected, Lightbox: ch})
}

func (g *Gallery) emitEvent(e Event) {
	if g.store == nil {
		return
	}
	e.Progress = g.Progress()
	g.store.EmitEvent(e)
}

// --- Frame output ---

// Card returns the frame output of card id at the current state.
func (g *Gallery) Card(id CardID) CardFrame {
	progress := g.Progress()
	hovered := g.hover != NoCard && g.hover == id
	glow := 0.0
	if !hovered {
		// A hovered card leaves the wave.
		glow = g.comp.Envelope.Glow(id.Index(), progress, g.cards.Len())
	}
	return CardFrame{
		ID:        id,
		Glow:      glow,
		Hovered:   hovered,
		Transform: g.comp.Compose(id, progress, g.cards.Len(), g.pointer, g.hover),
		Style:     StyleFor(glow, hovered),
		Image:     g.cfg.ImageURL(id),
	}
}

// Frame returns the frame output of every card in display order.
func (g *Gallery) Frame() []CardFrame {
	return g.AppendFrame(make([]CardFrame, 0, g.cards.Len()))
}

// AppendFrame appends every card's frame output to buf and returns it.
func (g *Gallery) AppendFrame(buf []CardFrame) []CardFrame {
	for i := 0; i < g.cards.Len(); i++ {
		buf = append(buf, g.Card(g.cards.At(i)))
	}
	return buf
}

// HoverTilt returns the inner image tilt of the hovered card following the
// pointer, or the identity transform when nothing is hovered.
func (g *Gallery) HoverTilt() Transform {
	if g.hover == NoCard {
		return IdentityTransform
	}
	return InnerTilt(g.hoverLocal, g.viewport)
}
