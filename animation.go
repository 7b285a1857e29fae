package cardwave

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition timings used by the rendering layer.
const (
	HoverTransition   float32 = 0.4  // seconds for a card to settle on a new target
	EntranceDuration  float32 = 0.6  // seconds for a card's fade-in-up
	EntranceStagger   float32 = 0.05 // seconds between consecutive card entrances
	entranceLift              = 30.0 // px the card rises from
	entranceTilt              = -10.0
)

// TransitionEase overshoots slightly before settling, close to
// cubic-bezier(0.34, 1.56, 0.64, 1).
var TransitionEase ease.TweenFunc = ease.OutBack

// TweenGroup animates the six fields of a Transform simultaneously. Call
// Update(dt) each frame; the group writes the current values into its target.
//
// There is no global animation manager; callers run Update themselves.
type TweenGroup struct {
	tweens [6]*gween.Tween
	fields [6]*float64
	Done   bool
}

// TweenTransform creates a TweenGroup that animates *target from its current
// value to to over duration seconds using the easing function.
func TweenTransform(target *Transform, to Transform, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.fields = [6]*float64{
		&target.TranslateX, &target.TranslateY, &target.TranslateZ,
		&target.RotateX, &target.RotateY, &target.Scale,
	}
	ends := [6]float64{to.TranslateX, to.TranslateY, to.TranslateZ, to.RotateX, to.RotateY, to.Scale}
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(*g.fields[i]), float32(ends[i]), duration, fn)
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := range g.tweens {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// CardMotion is the displayed transform of one card. Every time the computed
// target changes, the card restarts a HoverTransition toward it from wherever
// it currently is, so hover enter/leave and wave steps glide instead of
// snapping.
type CardMotion struct {
	Current Transform
	target  Transform
	tween   *TweenGroup
}

// NewCardMotion creates a motion resting at t.
func NewCardMotion(t Transform) *CardMotion {
	return &CardMotion{Current: t, target: t}
}

// Update retargets if needed, advances by dt seconds, and returns the
// displayed transform.
func (m *CardMotion) Update(target Transform, dt float32) Transform {
	if target != m.target {
		m.target = target
		m.tween = TweenTransform(&m.Current, target, HoverTransition, TransitionEase)
	}
	if m.tween != nil {
		m.tween.Update(dt)
		if m.tween.Done {
			m.Current = m.target
			m.tween = nil
		}
	}
	return m.Current
}

// Settled reports whether the card has reached its target.
func (m *CardMotion) Settled() bool {
	return m.tween == nil
}

// Entrance is a card's staggered fade-in-up when the gallery mounts.
type Entrance struct {
	delay   float32
	elapsed float32
	offset  Transform
	opacity float64
	tween   *TweenGroup
	fade    *gween.Tween
	Done    bool
}

// NewEntrance creates the entrance of the card at a 0-based index. Cards
// start EntranceStagger apart.
func NewEntrance(index int) *Entrance {
	e := &Entrance{
		delay:  float32(index) * EntranceStagger,
		offset: Transform{TranslateY: entranceLift, RotateX: entranceTilt, Scale: 1},
	}
	e.tween = TweenTransform(&e.offset, IdentityTransform, EntranceDuration, TransitionEase)
	e.fade = gween.New(0, 1, EntranceDuration, ease.Linear)
	return e
}

// Update advances the entrance by dt seconds and returns the transform to
// stack on the card plus its opacity.
func (e *Entrance) Update(dt float32) (Transform, float64) {
	if e.Done {
		return IdentityTransform, 1
	}
	e.elapsed += dt
	if e.elapsed < e.delay {
		return e.offset, 0
	}
	step := dt
	if e.elapsed-dt < e.delay {
		step = e.elapsed - e.delay
	}
	e.tween.Update(step)
	v, finished := e.fade.Update(step)
	e.opacity = float64(v)
	if e.tween.Done && finished {
		e.Done = true
		return IdentityTransform, 1
	}
	return e.offset, e.opacity
}
