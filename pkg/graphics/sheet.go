package graphics

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet is one texture containing many equally-sized frames. The
// frame dimensions are fixed at construction; the quad uses the frame
// dimensions, not the full sheet dimensions. Loading replaces the bound
// texture and the reported sheet size only, so a sheet is one replaceable
// texture reused with different selection rectangles.
type SpriteSheet struct {
	texture     *ebiten.Image
	width       int // sheet width in pixels
	height      int // sheet height in pixels
	frameWidth  int
	frameHeight int
}

// NewSpriteSheet creates a sheet with the given frame dimensions.
func NewSpriteSheet(frameWidth, frameHeight int) *SpriteSheet {
	return &SpriteSheet{
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
	}
}

// Load loads a sheet texture from an image file.
func (ss *SpriteSheet) Load(path string) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}
	ss.SetImage(ebiten.NewImageFromImage(img))
	return nil
}

// SetImage replaces the sheet texture and the reported sheet size.
func (ss *SpriteSheet) SetImage(texture *ebiten.Image) {
	ss.texture = texture
	ss.width = texture.Bounds().Dx()
	ss.height = texture.Bounds().Dy()
}

// Size returns the sheet dimensions in pixels.
func (ss *SpriteSheet) Size() (int, int) {
	return ss.width, ss.height
}

// FrameSize returns the frame dimensions in pixels.
func (ss *SpriteSheet) FrameSize() (int, int) {
	return ss.frameWidth, ss.frameHeight
}

// FrameRect returns the pixel sub-rectangle selecting one frame. y is the
// frame's top edge in pixels from the sheet top; xoffset counts whole
// frames from the left, with a one pixel gutter between columns.
func (ss *SpriteSheet) FrameRect(y, xoffset int) image.Rectangle {
	x := 1 + xoffset*(ss.frameWidth+1)
	return image.Rect(x, y, x+ss.frameWidth, y+ss.frameHeight)
}

// UV returns the normalized texture coordinates of the frame at
// (y, xoffset): left, right, top, bottom.
func (ss *SpriteSheet) UV(y, xoffset int) (u0, u1, v0, v1 float64) {
	x := 1 + xoffset*(ss.frameWidth+1)
	w := float64(ss.width)
	h := float64(ss.height)
	u0 = float64(x) / (w - 1)
	u1 = float64(x+ss.frameWidth) / (w - 1)
	v0 = float64(y) / (h - 1)
	v1 = float64(y+ss.frameHeight) / (h - 1)
	return
}

// DrawFrame draws the frame at (y, xoffset) under the given world
// transform. The frame quad is centered at the local origin. Drawing from
// an unloaded sheet draws nothing.
func (ss *SpriteSheet) DrawFrame(target Target, world ebiten.GeoM, y, xoffset int) {
	if ss.texture == nil {
		return
	}

	frame := ss.texture.SubImage(ss.FrameRect(y, xoffset)).(*ebiten.Image)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-float64(ss.frameWidth)/2, -float64(ss.frameHeight)/2)
	opts.GeoM.Concat(world)
	target.DrawImage(frame, opts)
}
