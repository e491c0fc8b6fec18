// Package audio provides the sound effect pool and background music for
// the contraption demo. Sound effects are WAV files with a fixed pool of
// playback instances each; music is MIDI synthesized through a SoundFont.
package audio

// SampleRate is the sample rate of the shared audio context.
const SampleRate = 44100

// Voice is one independently playable instance of a loaded sound effect,
// allowing the same sound to overlap with itself. Implementations are not
// required to be safe for concurrent use; the pool is driven from the
// main loop thread.
type Voice interface {
	// Play starts playback from the beginning, looped or one-shot.
	Play(loop bool)

	// Stop halts playback.
	Stop()

	// IsPlaying reports whether the voice is currently playing.
	IsPlaying() bool

	// SetVolume sets the playback volume in [0, 1].
	SetVolume(v float64)

	// SetPan sets the stereo pan in [-1, 1], left to right.
	SetPan(p float64)

	// SetPitch sets the playback frequency ratio (1 is normal speed).
	// Takes effect the next time the voice is played.
	SetPitch(p float64)
}

// Engine abstracts the audio backend so the pool can be tested without
// an Ebitengine audio context.
type Engine interface {
	// LoadEffect loads and decodes a sound effect file.
	LoadEffect(path string) (Effect, error)

	// NewVoice creates a playback instance for a loaded effect.
	NewVoice(e Effect) Voice
}

// Effect is an opaque immutable loaded audio asset.
type Effect interface {
	// Duration returns the effect length in milliseconds.
	Duration() int
}
