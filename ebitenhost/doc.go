// Package ebitenhost runs a [cardwave.Gallery] in an [Ebitengine] window.
//
// The host is the gallery's rendering layer. It feeds mouse and keyboard
// input into the gallery, eases every card toward its computed transform
// with a gween hover transition, plays the staggered entrance, and draws the
// cards and the lightbox overlay.
//
//	gallery, _ := cardwave.NewGallery(cardwave.DefaultConfig())
//	ebitenhost.Run(gallery, ebitenhost.RunConfig{Title: "Gallery"})
//
// It lives apart from the cardwave package so the engine builds and tests
// without a graphics driver.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
