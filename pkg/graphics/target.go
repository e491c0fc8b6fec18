// Package graphics provides sprite-based rendering: sprites, sprite
// sheets, the id-indexed sprite registry, bitmap text, and the renderer
// that composes a frame from them.
package graphics

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target is the surface a frame is drawn to. The real target wraps the
// Ebitengine screen image; the recording target logs draw calls for
// headless runs and tests.
type Target interface {
	// Fill clears the whole target with a color.
	Fill(c color.Color)

	// DrawImage draws one textured quad with the given options.
	DrawImage(img *ebiten.Image, opts *ebiten.DrawImageOptions)

	// Size returns the target dimensions in pixels.
	Size() (int, int)
}

// ScreenTarget adapts an *ebiten.Image to the Target interface.
type ScreenTarget struct {
	Image *ebiten.Image
}

func (t *ScreenTarget) Fill(c color.Color) {
	t.Image.Fill(c)
}

func (t *ScreenTarget) DrawImage(img *ebiten.Image, opts *ebiten.DrawImageOptions) {
	t.Image.DrawImage(img, opts)
}

func (t *ScreenTarget) Size() (int, int) {
	return t.Image.Bounds().Dx(), t.Image.Bounds().Dy()
}

// RecordedDraw is one draw call captured by a RecordingTarget.
type RecordedDraw struct {
	Image *ebiten.Image
	GeoM  ebiten.GeoM
}

// RecordingTarget records draw operations instead of rasterizing them.
type RecordingTarget struct {
	W, H  int
	Fills int
	Draws []RecordedDraw
}

// NewRecordingTarget creates a recording target of the given size.
func NewRecordingTarget(w, h int) *RecordingTarget {
	return &RecordingTarget{W: w, H: h}
}

func (t *RecordingTarget) Fill(color.Color) {
	t.Fills++
}

func (t *RecordingTarget) DrawImage(img *ebiten.Image, opts *ebiten.DrawImageOptions) {
	t.Draws = append(t.Draws, RecordedDraw{Image: img, GeoM: opts.GeoM})
}

func (t *RecordingTarget) Size() (int, int) {
	return t.W, t.H
}

// Reset clears the recorded history.
func (t *RecordingTarget) Reset() {
	t.Fills = 0
	t.Draws = nil
}
