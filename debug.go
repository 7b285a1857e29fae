package cardwave

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and wave metrics.
// Only populated when Gallery.debug is true.
type debugStats struct {
	frames     int
	tickTime   time.Duration
	maxTick    time.Duration
	lastActive int
}

// recordFrame updates the stats after a frame and logs a line whenever the
// wave moves on to a new card.
func (g *Gallery) recordFrame(tick time.Duration) {
	g.stats.frames++
	g.stats.tickTime += tick
	if tick > g.stats.maxTick {
		g.stats.maxTick = tick
	}
	active := ActiveIndex(g.Progress(), g.cards.Len())
	if active == g.stats.lastActive && g.stats.frames > 1 {
		return
	}
	g.stats.lastActive = active
	g.debugLog()
}

// debugLog prints wave and timing stats to stderr.
func (g *Gallery) debugLog() {
	if !g.debug {
		return
	}
	avg := time.Duration(0)
	if g.stats.frames > 0 {
		avg = g.stats.tickTime / time.Duration(g.stats.frames)
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[cardwave] frame %d | progress: %.4f | active: %d | hover: %d | lightbox: %v\n",
		g.stats.frames, g.Progress(), g.stats.lastActive+1, g.hover, g.lightbox.State())
	_, _ = fmt.Fprintf(os.Stderr,
		"[cardwave] tick avg: %v | tick max: %v | listeners: %d | pending frames: %d\n",
		avg, g.stats.maxTick, g.ListenerCount(), g.frames.Pending())
}

// debugCheckLeaks warns on stderr about anything still attached after
// Unmount. Every callback registered on the gallery, and every pending frame,
// holds a reference to a view that is gone.
func debugCheckLeaks(g *Gallery) {
	for _, leak := range g.leaks() {
		_, _ = fmt.Fprintf(os.Stderr, "[cardwave] warning: %s still attached after unmount\n", leak)
	}
}

// leaks returns a description of everything left attached after Unmount, or
// nil when the gallery is clean.
func (g *Gallery) leaks() []string {
	var out []string
	if n := g.ListenerCount(); n > 0 {
		out = append(out, fmt.Sprintf("%d listener(s)", n))
	}
	if n := g.frames.Pending(); n > 0 {
		out = append(out, fmt.Sprintf("%d pending frame(s)", n))
	}
	if g.wave.Running() {
		out = append(out, "wave loop")
	}
	return out
}
