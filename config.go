package cardwave

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("invalid gallery config")

// Config configures a Gallery.
type Config struct {
	// Cards is the number of cards N; ids run 1..N.
	Cards int

	// PerCard is how long each card stays under the wave. The full cycle is
	// Cards*PerCard.
	PerCard time.Duration

	// ImagePattern formats a card id into its image locator, e.g.
	// "/assets/mobile/%d.jpg".
	ImagePattern string

	// Perspective is the viewer distance in px used to project translateZ.
	Perspective float64

	Compositor CompositorConfig
	Envelope   Envelope

	// Debug enables stderr frame stats and listener leak reports.
	Debug bool
}

// DefaultConfig is the 31-card mobile gallery.
func DefaultConfig() Config {
	return Config{
		Cards:        31,
		PerCard:      DefaultPerCard,
		ImagePattern: "/assets/mobile/%d.jpg",
		Perspective:  1500,
		Compositor:   DefaultCompositorConfig,
		Envelope:     DefaultEnvelope,
	}
}

// Validate reports the first problem with the config.
func (c Config) Validate() error {
	switch {
	case c.Cards <= 0:
		return fmt.Errorf("%w: cards %d must be positive", ErrInvalidConfig, c.Cards)
	case c.PerCard <= 0:
		return fmt.Errorf("%w: per-card duration %v must be positive", ErrInvalidConfig, c.PerCard)
	case c.Envelope.FadeIn < 0 || c.Envelope.FadeOut < 0 || c.Envelope.FadeIn+c.Envelope.FadeOut > 1:
		return fmt.Errorf("%w: envelope fades %v/%v must be non-negative and sum to at most 1",
			ErrInvalidConfig, c.Envelope.FadeIn, c.Envelope.FadeOut)
	case c.Perspective < 0:
		return fmt.Errorf("%w: perspective %v must not be negative", ErrInvalidConfig, c.Perspective)
	case c.ImagePattern != "" && strings.Count(c.ImagePattern, "%d") != 1:
		return fmt.Errorf("%w: image pattern %q needs exactly one %%d", ErrInvalidConfig, c.ImagePattern)
	}
	return nil
}

// ImageURL returns the image locator of card id, or "" without a pattern.
func (c Config) ImageURL(id CardID) string {
	if c.ImagePattern == "" {
		return ""
	}
	return fmt.Sprintf(c.ImagePattern, int(id))
}

// configFile is the JSON form of Config. Zero fields keep the defaults.
type configFile struct {
	Cards        int     `json:"cards"`
	PerCardMs    int64   `json:"perCardMs"`
	ImagePattern string  `json:"imagePattern"`
	Perspective  float64 `json:"perspective"`
	FadeIn       float64 `json:"fadeIn"`
	FadeOut      float64 `json:"fadeOut"`
	Debug        bool    `json:"debug"`

	Compositor *struct {
		WaveLift     *float64 `json:"waveLift"`
		WaveScale    *float64 `json:"waveScale"`
		WaveRotate   *float64 `json:"waveRotate"`
		WaveDepth    *float64 `json:"waveDepth"`
		ParallaxMove *float64 `json:"parallaxMove"`
		ParallaxTilt *float64 `json:"parallaxTilt"`
		HoverScale   *float64 `json:"hoverScale"`
		HoverDepth   *float64 `json:"hoverDepth"`
	} `json:"compositor"`
}

// LoadConfig overlays JSON settings onto DefaultConfig and validates the
// result.
func LoadConfig(jsonData []byte) (Config, error) {
	var f configFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return Config{}, fmt.Errorf("parse gallery config: %w", err)
	}

	cfg := DefaultConfig()
	if f.Cards != 0 {
		cfg.Cards = f.Cards
	}
	if f.PerCardMs != 0 {
		cfg.PerCard = time.Duration(f.PerCardMs) * time.Millisecond
	}
	if f.ImagePattern != "" {
		cfg.ImagePattern = f.ImagePattern
	}
	if f.Perspective != 0 {
		cfg.Perspective = f.Perspective
	}
	if f.FadeIn != 0 {
		cfg.Envelope.FadeIn = f.FadeIn
	}
	if f.FadeOut != 0 {
		cfg.Envelope.FadeOut = f.FadeOut
	}
	cfg.Debug = f.Debug

	if c := f.Compositor; c != nil {
		set := func(dst *float64, src *float64) {
			if src != nil {
				*dst = *src
			}
		}
		set(&cfg.Compositor.WaveLift, c.WaveLift)
		set(&cfg.Compositor.WaveScale, c.WaveScale)
		set(&cfg.Compositor.WaveRotate, c.WaveRotate)
		set(&cfg.Compositor.WaveDepth, c.WaveDepth)
		set(&cfg.Compositor.ParallaxMove, c.ParallaxMove)
		set(&cfg.Compositor.ParallaxTilt, c.ParallaxTilt)
		set(&cfg.Compositor.HoverScale, c.HoverScale)
		set(&cfg.Compositor.HoverDepth, c.HoverDepth)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load gallery config: %w", err)
	}
	return cfg, nil
}
