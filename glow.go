package cardwave

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Envelope shapes a card's intensity across its wave slot: an ease-in over
// the first FadeIn fraction of the slot, a plateau at 1, and an ease-out over
// the last FadeOut fraction.
type Envelope struct {
	FadeIn  float64
	FadeOut float64

	// Ease replaces Smoothstep when set. It is called as Ease(t, 0, 1, 1)
	// with t in [0, 1] and should return 0 at t=0 and 1 at t=1.
	Ease ease.TweenFunc
}

// DefaultEnvelope fades in over the first 20% of a slot and out over the
// last 20%, with smoothstep on both edges.
var DefaultEnvelope = Envelope{FadeIn: 0.2, FadeOut: 0.2}

// Smoothstep is the cubic ease t²(3-2t). Its first derivative is zero at both
// t=0 and t=1. Inputs are clamped to [0, 1].
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// SmoothstepTween is Smoothstep in gween's TweenFunc form, so the wave curve
// can be reused by TweenGroup and friends.
func SmoothstepTween(t, b, c, d float32) float32 {
	if d == 0 {
		return b + c
	}
	return b + c*float32(Smoothstep(float64(t/d)))
}

func (e Envelope) curve(t float64) float64 {
	if e.Ease == nil {
		return Smoothstep(t)
	}
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(e.Ease(float32(t), 0, 1, 1))
}

// At returns the intensity at local slot position local in [0, 1).
func (e Envelope) At(local float64) float64 {
	switch {
	case local < 0:
		return 0
	case e.FadeIn > 0 && local < e.FadeIn:
		return clamp01(e.curve(local / e.FadeIn))
	case e.FadeOut > 0 && local > 1-e.FadeOut:
		return clamp01(1 - e.curve((local-(1-e.FadeOut))/e.FadeOut))
	default:
		return 1
	}
}

// wrapProgress folds any progress value into [0, 1). NaN and infinities fold
// to 0.
func wrapProgress(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	p -= math.Floor(p)
	if p >= 1 {
		return 0
	}
	return p
}

// ActiveIndex returns floor(progress*n), the 0-based index of the card whose
// slot contains progress. At an exact slot boundary the new slot wins.
// Returns -1 when n is not positive.
func ActiveIndex(progress float64, n int) int {
	if n <= 0 {
		return -1
	}
	active, _ := slot(progress, n)
	return active
}

// slot returns the active index and the fractional position within its slot.
func slot(progress float64, n int) (int, float64) {
	p := wrapProgress(progress)
	scaled := p * float64(n)
	active := int(math.Floor(scaled))
	if active >= n {
		return n - 1, math.Nextafter(1, 0)
	}
	return active, scaled - float64(active)
}

// Glow returns the wave intensity in [0, 1] of the card at index for the given
// cycle progress over n cards, using DefaultEnvelope. Only the active card is
// lit; every other card returns 0.
func Glow(index int, progress float64, n int) float64 {
	return DefaultEnvelope.Glow(index, progress, n)
}

// Glow is the package-level Glow with a custom envelope.
func (e Envelope) Glow(index int, progress float64, n int) float64 {
	if n <= 0 || index < 0 || index >= n {
		return 0
	}
	active, local := slot(progress, n)
	if index != active {
		return 0
	}
	return e.At(local)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
