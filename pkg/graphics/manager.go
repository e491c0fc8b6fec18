package graphics

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"

	"contraption/pkg/config"
)

// Manager is the sprite registry: a map from small integer sprite ids to
// loaded sprites. The registry owns its sprites. Drawing an empty slot is
// a no-op; a failed load is a fatal configuration error surfaced to the
// caller. Single-threaded use is assumed.
type Manager struct {
	sprites *intmap.Map[int32, *Sprite]
}

// NewManager creates an empty sprite registry.
func NewManager() *Manager {
	return &Manager{
		sprites: intmap.New[int32, *Sprite](64),
	}
}

// Load resolves a sprite name through the game settings and loads its
// image file under the given id. A name missing from the settings or a
// failed image load is fatal for the caller.
func (m *Manager) Load(id int, name string, settings *config.Settings) error {
	file, err := settings.SpriteFile(name)
	if err != nil {
		return fmt.Errorf("cannot load sprite %q: %w", name, err)
	}
	if err := m.LoadFile(id, file); err != nil {
		return fmt.Errorf("cannot load sprite %q: %w", name, err)
	}
	return nil
}

// LoadFile loads a sprite directly from an image file under the given id.
func (m *Manager) LoadFile(id int, file string) error {
	sprite, err := LoadSprite(file)
	if err != nil {
		return err
	}
	m.sprites.Put(int32(id), sprite)
	return nil
}

// Put registers an already constructed sprite under an id.
func (m *Manager) Put(id int, sprite *Sprite) {
	m.sprites.Put(int32(id), sprite)
}

// Sprite returns the sprite registered under id, or nil.
func (m *Manager) Sprite(id int) *Sprite {
	sprite, ok := m.sprites.Get(int32(id))
	if !ok {
		return nil
	}
	return sprite
}

// Len returns the number of registered sprites.
func (m *Manager) Len() int {
	return m.sprites.Len()
}

// Draw draws the sprite registered under id with the given world
// transform. An empty slot draws nothing.
func (m *Manager) Draw(id int, target Target, world ebiten.GeoM) {
	if sprite := m.Sprite(id); sprite != nil {
		sprite.Draw(target, world)
	}
}
