package cardwave

import (
	"fmt"
	"math"
)

// Transform is the declarative 3D transform of one card for one frame.
// Translations are in pixels, rotations in degrees.
type Transform struct {
	TranslateX float64
	TranslateY float64
	TranslateZ float64
	RotateX    float64
	RotateY    float64
	Scale      float64
}

// IdentityTransform leaves a card where the layout put it.
var IdentityTransform = Transform{Scale: 1}

// CompositorConfig holds the coefficients of every transform contribution.
type CompositorConfig struct {
	WaveLift     float64 // px of upward lift at full glow
	WaveScale    float64 // extra scale at full glow
	WaveRotate   float64 // peak rotateY flourish in degrees
	WaveDepth    float64 // px of translateZ at full glow
	ParallaxMove float64 // px of translate per unit of pointer offset
	ParallaxTilt float64 // degrees of tilt per unit of pointer offset

	HoverScale float64 // scale of the hovered card
	HoverDepth float64 // px of translateZ for the hovered card
}

// DefaultCompositorConfig matches the gallery's tuned look.
var DefaultCompositorConfig = CompositorConfig{
	WaveLift:     20,
	WaveScale:    0.15,
	WaveRotate:   8,
	WaveDepth:    30,
	ParallaxMove: 3,
	ParallaxTilt: 5,
	HoverScale:   1.08,
	HoverDepth:   60,
}

// Compositor merges wave intensity, pointer parallax, and hover state into a
// Transform per card. It is a pure function of its inputs; all state lives in
// the caller.
type Compositor struct {
	Config   CompositorConfig
	Envelope Envelope
}

// NewCompositor creates a compositor with the default coefficients and
// envelope.
func NewCompositor() *Compositor {
	return &Compositor{Config: DefaultCompositorConfig, Envelope: DefaultEnvelope}
}

// Hovered returns the fixed transform of a hovered card: elevated scale, zero
// rotation, full forward translation.
func (c *Compositor) Hovered() Transform {
	return Transform{TranslateZ: c.Config.HoverDepth, Scale: c.Config.HoverScale}
}

// Compose returns the transform of card id at the given wave progress over n
// cards. When hover names id, the hovered transform is returned and progress
// and pointer are ignored.
func (c *Compositor) Compose(id CardID, progress float64, n int, pointer Vec2, hover CardID) Transform {
	if hover != NoCard && hover == id {
		return c.Hovered()
	}
	return c.ComposeGlow(c.Envelope.Glow(id.Index(), progress, n), pointer)
}

// ComposeGlow composes the wave contribution for an already computed glow
// with the pointer parallax.
func (c *Compositor) ComposeGlow(glow float64, pointer Vec2) Transform {
	cfg := &c.Config
	glow = clamp01(glow)
	px, py := finite(pointer.X), finite(pointer.Y)

	waveRotate := math.Sin(glow*math.Pi) * cfg.WaveRotate

	return Transform{
		TranslateX: px * cfg.ParallaxMove,
		TranslateY: py*cfg.ParallaxMove - glow*cfg.WaveLift,
		TranslateZ: glow * cfg.WaveDepth,
		RotateY:    px*cfg.ParallaxTilt + waveRotate,
		RotateX:    0 - py*cfg.ParallaxTilt,
		Scale:      1 + glow*cfg.WaveScale,
	}
}

// finite maps NaN and infinities to 0 so a bad pointer reading can never
// poison a transform.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// InnerTilt returns the tilt applied to the image inside a hovered card,
// following the pointer within the card. local is the pointer position in the
// card's unit square (0..1 on both axes). Narrow viewports (under 768px) get
// the neutral transform.
func InnerTilt(local Vec2, viewportWidth float64) Transform {
	if viewportWidth < 768 {
		return IdentityTransform
	}
	return Transform{
		RotateX: (finite(local.Y) - 0.5) * 20,
		RotateY: (finite(local.X) - 0.5) * -20,
		Scale:   1.02,
	}
}

// CSS serializes the transform in the CSS transform-function order used by
// web render layers.
func (t Transform) CSS() string {
	return fmt.Sprintf("translateX(%gpx) translateY(%gpx) translateZ(%gpx) rotateY(%gdeg) rotateX(%gdeg) scale(%g)",
		t.TranslateX, t.TranslateY, t.TranslateZ, t.RotateY, t.RotateX, t.Scale)
}

// Lerp interpolates every component between t and to.
func (t Transform) Lerp(to Transform, f float64) Transform {
	return Transform{
		TranslateX: t.TranslateX + (to.TranslateX-t.TranslateX)*f,
		TranslateY: t.TranslateY + (to.TranslateY-t.TranslateY)*f,
		TranslateZ: t.TranslateZ + (to.TranslateZ-t.TranslateZ)*f,
		RotateX:    t.RotateX + (to.RotateX-t.RotateX)*f,
		RotateY:    t.RotateY + (to.RotateY-t.RotateY)*f,
		Scale:      t.Scale + (to.Scale-t.Scale)*f,
	}
}

// --- 2D projection ---

// Affine projects the transform onto a 2D affine matrix for a card of size
// w x h whose top-left sits at the origin. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-w/2, -h/2) -> Scale(s*cos(rotY), s*cos(rotX)) -> Perspective(z) -> Translate(w/2+tx, h/2+ty)
//
// Rotations are approximated by foreshortening the rotated axis; translateZ
// becomes a uniform scale of p/(p-z) for perspective distance p. A
// non-positive perspective disables the depth scale.
func (t Transform) Affine(w, h, perspective float64) [6]float64 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	k := 1.0
	if perspective > 0 {
		z := math.Min(t.TranslateZ, perspective*0.9)
		k = perspective / (perspective - z)
	}

	sx := s * k * math.Cos(t.RotateY*math.Pi/180)
	sy := s * k * math.Cos(t.RotateX*math.Pi/180)

	pivot := [6]float64{1, 0, 0, 1, -w / 2, -h / 2}
	scale := [6]float64{sx, 0, 0, sy, 0, 0}
	place := [6]float64{1, 0, 0, 1, w/2 + t.TranslateX, h/2 + t.TranslateY}

	return multiplyAffine(place, multiplyAffine(scale, pivot))
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Then stacks o on top of t: translations and rotations add, scales multiply.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		TranslateX: t.TranslateX + o.TranslateX,
		TranslateY: t.TranslateY + o.TranslateY,
		TranslateZ: t.TranslateZ + o.TranslateZ,
		RotateX:    t.RotateX + o.RotateX,
		RotateY:    t.RotateY + o.RotateY,
		Scale:      t.Scale * o.Scale,
	}
}
