package cardwave

type injectKind uint8

const (
	injectMove injectKind = iota
	injectEnter
	injectLeave
	injectClick
	injectClickAt
	injectKey
)

// syntheticEvent is a single injected input event. Positions are in device
// pixels, exactly as a host would report real pointer input.
type syntheticEvent struct {
	kind   injectKind
	x, y   float64
	card   CardID
	target ClickTarget
	key    Key
}

// InjectPointerMove queues a pointer move. The event is consumed on the next
// Update.
func (g *Gallery) InjectPointerMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectMove, x: x, y: y})
}

// InjectPointerEnter queues the pointer entering card id.
func (g *Gallery) InjectPointerEnter(id CardID) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectEnter, card: id})
}

// InjectPointerLeave queues the pointer leaving card id.
func (g *Gallery) InjectPointerLeave(id CardID) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectLeave, card: id})
}

// InjectClick queues a click on a resolved target.
func (g *Gallery) InjectClick(target ClickTarget) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectClick, target: target})
}

// InjectClickAt queues a click at a position, resolved like ClickAt.
func (g *Gallery) InjectClickAt(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectClickAt, x: x, y: y})
}

// InjectKey queues a key press.
func (g *Gallery) InjectKey(k Key) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{kind: injectKey, key: k})
}

// processInjected pops one event from the inject queue and feeds it through
// the regular entry points. Returns true if an event was consumed.
func (g *Gallery) processInjected() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch evt.kind {
	case injectMove:
		g.PointerMove(evt.x, evt.y)
	case injectEnter:
		g.PointerEnter(evt.card)
	case injectLeave:
		g.PointerLeave(evt.card)
	case injectClick:
		g.Click(evt.target)
	case injectClickAt:
		g.ClickAt(evt.x, evt.y)
	case injectKey:
		g.KeyDown(evt.key)
	}
	return true
}
