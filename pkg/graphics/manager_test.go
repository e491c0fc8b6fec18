package graphics

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"contraption/pkg/config"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s, err := config.Parse([]byte(`
renderer:
  width: 640
  height: 480
sprites:
  - name: ball
    file: no/such/ball.png
`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return s
}

func TestManagerLoadUnknownName(t *testing.T) {
	m := NewManager()
	err := m.Load(0, "anvil", testSettings(t))
	if err == nil {
		t.Fatal("loading an unknown sprite name must fail")
	}
	if !errors.Is(err, config.ErrSpriteNotFound) {
		t.Errorf("error = %v, want ErrSpriteNotFound", err)
	}
	if !strings.Contains(err.Error(), `cannot load sprite "anvil"`) {
		t.Errorf("error %q should carry the diagnostic name", err)
	}
}

func TestManagerLoadMissingFile(t *testing.T) {
	m := NewManager()
	err := m.Load(0, "ball", testSettings(t))
	if err == nil {
		t.Fatal("loading a sprite whose file is missing must fail")
	}
	if !strings.Contains(err.Error(), `cannot load sprite "ball"`) {
		t.Errorf("error %q should carry the diagnostic name", err)
	}
}

func TestManagerDrawEmptySlot(t *testing.T) {
	m := NewManager()
	target := NewRecordingTarget(640, 480)

	var world ebiten.GeoM
	m.Draw(42, target, world)

	if len(target.Draws) != 0 {
		t.Errorf("empty slot issued %d draws, want 0", len(target.Draws))
	}
}

func TestManagerDrawOneCallPerInvocation(t *testing.T) {
	m := NewManager()
	m.Put(3, NewSpriteFromImage(image.NewRGBA(image.Rect(0, 0, 16, 16))))
	target := NewRecordingTarget(640, 480)

	var world ebiten.GeoM
	m.Draw(3, target, world)
	m.Draw(3, target, world)

	if len(target.Draws) != 2 {
		t.Errorf("two Draw calls issued %d draws, want exactly one each", len(target.Draws))
	}
}

func TestManagerSpriteLookup(t *testing.T) {
	m := NewManager()
	sprite := NewSpriteFromImage(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	m.Put(7, sprite)

	if got := m.Sprite(7); got != sprite {
		t.Error("Sprite(7) should return the registered sprite")
	}
	if got := m.Sprite(8); got != nil {
		t.Error("Sprite(8) should be nil for an empty slot")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
