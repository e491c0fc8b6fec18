package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"contraption/pkg/config"
)

// Renderer owns the frame lifecycle and composes the transforms that
// place sprites on screen. World coordinates are pixels with y measured
// up from the bottom of the screen, matching the physics world; the
// renderer flips to the screen's top-down convention when drawing.
type Renderer struct {
	width  int
	height int

	manager    *Manager
	background *Sprite
	text       *SpriteSheet

	target Target // valid between BeginFrame and EndFrame
}

// NewRenderer creates a renderer for the given screen size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:   width,
		height:  height,
		manager: NewManager(),
		text:    NewSpriteSheet(TextFrameWidth, TextFrameHeight),
	}
}

// Size returns the world width and height, which for this demo equals
// the screen size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Manager returns the sprite registry.
func (r *Renderer) Manager() *Manager {
	return r.manager
}

// TextSheet returns the bitmap font sheet.
func (r *Renderer) TextSheet() *SpriteSheet {
	return r.text
}

// LoadBackground loads the background image named in the settings.
func (r *Renderer) LoadBackground(settings *config.Settings) error {
	file, err := settings.ImageFile("background")
	if err != nil {
		return fmt.Errorf("cannot load background: %w", err)
	}
	sprite, err := LoadSprite(file)
	if err != nil {
		return fmt.Errorf("cannot load background: %w", err)
	}
	r.background = sprite
	return nil
}

// LoadTextSheet loads the bitmap font texture named in the settings.
func (r *Renderer) LoadTextSheet(settings *config.Settings) error {
	file, err := settings.ImageFile("text")
	if err != nil {
		return fmt.Errorf("cannot load text sheet: %w", err)
	}
	if err := r.text.Load(file); err != nil {
		return fmt.Errorf("cannot load text sheet: %w", err)
	}
	return nil
}

// Load loads a named sprite into the registry under the given id.
func (r *Renderer) Load(id int, name string, settings *config.Settings) error {
	return r.manager.Load(id, name, settings)
}

// BeginFrame starts a new animation frame on the given target and clears
// it. Draw calls are only valid between BeginFrame and EndFrame.
func (r *Renderer) BeginFrame(target Target) {
	r.target = target
	target.Fill(color.Black)
}

// EndFrame ends the animation frame. Presentation itself happens in the
// display loop, synchronized to the display refresh; the simulation step
// is decoupled from that cadence.
func (r *Renderer) EndFrame() {
	r.target = nil
}

// DrawBackground draws the background image as a full-screen quad with
// an identity world transform.
func (r *Renderer) DrawBackground() {
	if r.target == nil || r.background == nil {
		return
	}

	// The background quad fills the screen regardless of texture size.
	w, h := r.background.Size()
	var world ebiten.GeoM
	world.Scale(float64(r.width)/float64(w), float64(r.height)/float64(h))
	world.Translate(float64(r.width)/2, float64(r.height)/2)
	r.background.Draw(r.target, world)
}

// worldMatrix composes scale, rotation about Z, then translation, with
// the y axis flipped into screen coordinates.
func (r *Renderer) worldMatrix(x, y, angle, xscale, yscale float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(xscale, yscale)
	// World angles are counterclockwise in the y-up world; the screen's
	// y axis points down, so the rotation sign flips with it.
	m.Rotate(-angle)
	m.Translate(x, float64(r.height)-y)
	return m
}

// Draw draws a registered sprite at the given world position (pixels,
// y up from the bottom), orientation (radians) and scale (1 is actual
// size). An empty sprite slot draws nothing.
func (r *Renderer) Draw(id int, x, y, angle, xscale, yscale float64) {
	if r.target == nil {
		return
	}
	r.manager.Draw(id, r.target, r.worldMatrix(x, y, angle, xscale, yscale))
}

// DrawTop is Draw with the vertical coordinate measured down from the
// top of the screen.
func (r *Renderer) DrawTop(id int, x, y, angle, scale float64) {
	r.Draw(id, x, float64(r.height)-y, angle, scale, scale)
}

// DrawText draws a string centered horizontally on the screen using the
// monospaced bitmap font. The cursor advances one fixed cell width per
// character; there is no kerning, wrapping, or Unicode.
func (r *Renderer) DrawText(text string) {
	if r.target == nil {
		return
	}

	frameW, _ := r.text.FrameSize()
	x := (float64(r.width) - float64(len(text)*frameW)) / 2
	y := float64(r.height) / 2

	for i := 0; i < len(text); i++ {
		row, xoffset := glyphCell(text[i])

		var world ebiten.GeoM
		world.Translate(x, y)
		r.text.DrawFrame(r.target, world, row, xoffset)

		x += float64(frameW)
	}
}
