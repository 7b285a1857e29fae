package cardwave

// CardStyle holds the non-geometric visuals derived from a card's glow.
// Alphas and opacities are in [0, 1].
type CardStyle struct {
	HaloOpacity   float64 // blurred gradient halo behind the card
	BorderAlpha   float64 // cyan border alpha
	ShadowBlur    float64 // px of box-shadow blur
	ShadowAlpha   float64 // box-shadow alpha
	Brightness    float64 // image brightness multiplier
	BadgeOpacity  float64 // number badge opacity
	BadgeScale    float64 // number badge scale
	CornerOpacity float64 // corner accent opacity
	Pulse         bool    // hovered cards pulse their halo and float their badge
}

// StyleFor derives the card visuals for a glow intensity. Hovered cards get
// the fixed hover look; glow is ignored for them.
func StyleFor(glow float64, hovered bool) CardStyle {
	if hovered {
		return CardStyle{
			HaloOpacity:   1,
			BorderAlpha:   0.7,
			ShadowBlur:    40,
			ShadowAlpha:   0.5,
			Brightness:    1.1,
			BadgeOpacity:  1,
			BadgeScale:    1.1,
			CornerOpacity: 1,
			Pulse:         true,
		}
	}
	glow = clamp01(glow)
	return CardStyle{
		HaloOpacity:   glow * 0.6,
		BorderAlpha:   glow * 0.4,
		ShadowBlur:    glow * 30,
		ShadowAlpha:   glow * 0.4,
		Brightness:    1 + glow*0.15,
		BadgeOpacity:  glow * 0.8,
		BadgeScale:    1 + glow*0.2,
		CornerOpacity: glow * 0.5,
	}
}
