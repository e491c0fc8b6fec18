package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

// Music plays looping MIDI background music synthesized through a
// SoundFont. Playback is fire-and-forget against the shared audio
// context; the synthesizer renders samples on the audio thread.
type Music struct {
	ctx       *eaudio.Context
	log       *slog.Logger
	soundFont *meltysynth.SoundFont
	player    *eaudio.Player
	muted     bool
	mu        sync.Mutex
}

// NewMusic creates a music player. When muted, playback is silent but
// otherwise proceeds normally (headless mode).
func NewMusic(muted bool, log *slog.Logger) *Music {
	if log == nil {
		log = slog.Default()
	}
	return &Music{
		ctx:   sharedContext(),
		log:   log,
		muted: muted,
	}
}

// LoadSoundFont loads the SF2 soundfont used for MIDI synthesis.
func (m *Music) LoadSoundFont(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot load soundfont %s: %w", path, err)
	}

	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot parse soundfont %s: %w", path, err)
	}

	m.soundFont = sf
	m.log.Info("soundfont loaded", "path", path)
	return nil
}

// Play starts looped playback of a MIDI file. Any current playback is
// stopped first.
func (m *Music) Play(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.soundFont == nil {
		return fmt.Errorf("no soundfont loaded")
	}

	if m.player != nil {
		m.player.Close()
		m.player = nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot load MIDI file %s: %w", path, err)
	}

	midiFile, err := meltysynth.NewMidiFile(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot parse MIDI file %s: %w", path, err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synthesizer, err := meltysynth.NewSynthesizer(m.soundFont, settings)
	if err != nil {
		return fmt.Errorf("cannot create synthesizer: %w", err)
	}

	sequencer := meltysynth.NewMidiFileSequencer(synthesizer)
	sequencer.Play(midiFile, true) // loop

	m.player, err = m.ctx.NewPlayer(&midiStream{sequencer: sequencer})
	if err != nil {
		return fmt.Errorf("cannot create music player: %w", err)
	}

	if m.muted {
		m.player.SetVolume(0)
	}
	m.player.Play()

	m.log.Info("music started", "path", path)
	return nil
}

// Stop halts music playback.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.player != nil {
		m.player.Close()
		m.player = nil
	}
}

// IsPlaying reports whether music is currently playing.
func (m *Music) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player != nil && m.player.IsPlaying()
}

// midiStream renders synthesized samples on demand for the audio player.
type midiStream struct {
	sequencer *meltysynth.MidiFileSequencer
}

// Read generates 16-bit little-endian stereo samples.
func (s *midiStream) Read(p []byte) (int, error) {
	sampleCount := len(p) / 4 // 2 channels * 2 bytes per sample

	left := make([]float32, sampleCount)
	right := make([]float32, sampleCount)
	s.sequencer.Render(left, right)

	for i := 0; i < sampleCount; i++ {
		binary.LittleEndian.PutUint16(p[i*4:], uint16(int16(left[i]*32767)))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(int16(right[i]*32767)))
	}

	return sampleCount * 4, nil
}
