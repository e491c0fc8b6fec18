package graphics

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewSpriteFromImage(t *testing.T) {
	sprite := NewSpriteFromImage(image.NewRGBA(image.Rect(0, 0, 64, 32)))

	w, h := sprite.Size()
	if w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
	if sprite.Texture() == nil {
		t.Error("Texture() should not be nil after construction")
	}
}

func TestSpriteDrawCenteredQuad(t *testing.T) {
	sprite := NewSpriteFromImage(image.NewRGBA(image.Rect(0, 0, 64, 32)))
	target := NewRecordingTarget(640, 480)

	var world ebiten.GeoM
	world.Translate(320, 240)
	sprite.Draw(target, world)

	if len(target.Draws) != 1 {
		t.Fatalf("Draw issued %d draws, want 1", len(target.Draws))
	}

	// The quad is centered at the transform position.
	g := target.Draws[0].GeoM
	if tx := g.Element(0, 2); tx != 320-32 {
		t.Errorf("tx = %v, want %v", tx, 320-32)
	}
	if ty := g.Element(1, 2); ty != 240-16 {
		t.Errorf("ty = %v, want %v", ty, 240-16)
	}
}

func TestUnloadedSpriteDrawsNothing(t *testing.T) {
	target := NewRecordingTarget(640, 480)

	var nilSprite *Sprite
	var world ebiten.GeoM
	nilSprite.Draw(target, world)
	(&Sprite{}).Draw(target, world)

	if len(target.Draws) != 0 {
		t.Errorf("unloaded sprites issued %d draws, want 0", len(target.Draws))
	}
}

func TestLoadSpriteMissingFile(t *testing.T) {
	if _, err := LoadSprite("no/such/image.png"); err == nil {
		t.Error("LoadSprite should fail for a missing file")
	}
}
