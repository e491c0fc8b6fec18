package graphics

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	_ "golang.org/x/image/bmp"
)

// Sprite is a texture with a quad sized to the texture's pixel
// dimensions and centered at the local origin. A sprite is only valid
// after a successful load; drawing an unloaded sprite draws nothing.
type Sprite struct {
	texture *ebiten.Image
	width   int
	height  int
}

// LoadSprite loads an image file (PNG, JPEG or BMP) into a sprite and
// sizes the quad from the texture's pixel dimensions.
func LoadSprite(path string) (*Sprite, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	return NewSpriteFromImage(img), nil
}

// NewSpriteFromImage creates a sprite from an already decoded image.
func NewSpriteFromImage(img image.Image) *Sprite {
	texture := ebiten.NewImageFromImage(img)
	return &Sprite{
		texture: texture,
		width:   texture.Bounds().Dx(),
		height:  texture.Bounds().Dy(),
	}
}

// Size returns the sprite dimensions in pixels.
func (s *Sprite) Size() (int, int) {
	return s.width, s.height
}

// Texture returns the sprite's texture.
func (s *Sprite) Texture() *ebiten.Image {
	return s.texture
}

// Draw draws the sprite's quad under the given world transform, issuing
// exactly one draw call. The quad is centered at the local origin before
// the transform is applied.
func (s *Sprite) Draw(target Target, world ebiten.GeoM) {
	if s == nil || s.texture == nil {
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-float64(s.width)/2, -float64(s.height)/2)
	opts.GeoM.Concat(world)
	target.DrawImage(s.texture, opts)
}

// loadImage reads and decodes an image file.
func loadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read image file %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image file %s: %w", path, err)
	}
	return img, nil
}
