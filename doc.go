// Package cardwave is the animation engine of an interactive card gallery.
//
// A gallery is a fixed, ordered set of cards. An ambient highlight "wave"
// sweeps across them one card at a time, the whole grid tilts gently with the
// pointer, hovering a card lifts it out of the wave, and clicking a card opens
// a full-screen lightbox with circular navigation.
//
// The package does not draw pixels on its own. From elapsed time and pointer
// and keyboard input it computes, per card and per frame, a declarative
// [Transform] and a glow intensity; a rendering layer applies them. Three
// rendering layers ship with the module: package ebitenhost (an [Ebitengine]
// window), [RenderFrame] (an offline PNG via [gg]), and the terminal host in
// examples/termgallery. The package itself needs no graphics driver.
//
// # Quick start
//
//	gallery, err := cardwave.NewGallery(cardwave.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	ebitenhost.Run(gallery, ebitenhost.RunConfig{Title: "Gallery", Width: 1280, Height: 800})
//
// For full control, mount the gallery yourself and call [Gallery.Update] once
// per frame:
//
//	gallery.Mount(time.Now())
//	defer gallery.Unmount()
//	// each frame:
//	gallery.PointerMove(x, y)
//	gallery.Update(time.Now())
//	for _, card := range gallery.Frame() {
//		// draw card.Transform, card.Style ...
//	}
//
// # Pure core
//
// [Glow] maps (card index, cycle progress, card count) to an intensity in
// [0, 1] with a smoothstep fade in and out, so a card's glow reaches zero
// exactly as the next card's begins. [Compositor.Compose] merges that glow
// with the pointer offset and hover state. Hover always wins: a hovered card's
// transform ignores the wave and the pointer entirely.
//
// # Lifecycle
//
// [Gallery.Mount] registers the gallery's listeners and starts the wave's
// frame loop on the gallery's [FrameQueue]; [Gallery.Unmount] releases all of
// them. The [Lightbox] holds its keyboard binding only while open.
// Everything runs on the host's single update loop; nothing is safe for
// concurrent use.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/fogleman/gg
package cardwave
