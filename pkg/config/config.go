// Package config provides YAML-based game settings loading: screen
// dimensions and the named asset catalog (images, sprites, sounds, music).
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings lookup errors. A missing named asset is a fatal configuration
// error; the app layer logs the diagnostic and exits.
var (
	ErrImageNotFound  = errors.New("image not found in settings")
	ErrSpriteNotFound = errors.New("sprite not found in settings")
)

// Settings holds the game settings loaded from the YAML settings file.
type Settings struct {
	Game     GameSettings     `yaml:"game"`
	Renderer RendererSettings `yaml:"renderer"`
	Images   []ImageEntry     `yaml:"images"`
	Sprites  []SpriteEntry    `yaml:"sprites"`
	Sounds   []SoundEntry     `yaml:"sounds"`
	Music    MusicSettings    `yaml:"music"`
}

// GameSettings names the game.
type GameSettings struct {
	Name string `yaml:"name"`
}

// RendererSettings holds the screen dimensions in pixels.
type RendererSettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ImageEntry maps a symbolic image name (background, text) to a file.
type ImageEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// SpriteEntry maps a symbolic sprite name to its image file.
type SpriteEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// SoundEntry describes one sound effect and how many playback instances
// to pre-allocate for it.
type SoundEntry struct {
	File      string `yaml:"file"`
	Instances int    `yaml:"instances"`
}

// MusicSettings describes the optional looping background music.
type MusicSettings struct {
	File      string `yaml:"file"`      // MIDI file
	SoundFont string `yaml:"soundfont"` // SF2 soundfont used for synthesis
}

// Load reads and parses the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load settings file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML settings data.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse settings: %w", err)
	}

	if s.Renderer.Width <= 0 || s.Renderer.Height <= 0 {
		return nil, fmt.Errorf("invalid renderer size %dx%d", s.Renderer.Width, s.Renderer.Height)
	}

	// A sound with no instances attribute defaults to a single instance.
	for i := range s.Sounds {
		if s.Sounds[i].Instances <= 0 {
			s.Sounds[i].Instances = 1
		}
	}

	return &s, nil
}

// ImageFile returns the file for the named image (background, text).
func (s *Settings) ImageFile(name string) (string, error) {
	for _, img := range s.Images {
		if img.Name == name {
			return img.File, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrImageNotFound, name)
}

// SpriteFile returns the file for the named sprite.
func (s *Settings) SpriteFile(name string) (string, error) {
	for _, spr := range s.Sprites {
		if spr.Name == name {
			return spr.File, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSpriteNotFound, name)
}
