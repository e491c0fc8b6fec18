package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var (
	// Ebitengine allows only one audio context per process.
	globalAudioContext *eaudio.Context
	audioContextMutex  sync.Mutex
)

// sharedContext returns the process-wide audio context, creating it on
// first use.
func sharedContext() *eaudio.Context {
	audioContextMutex.Lock()
	defer audioContextMutex.Unlock()

	if globalAudioContext == nil {
		globalAudioContext = eaudio.NewContext(SampleRate)
	}
	return globalAudioContext
}

// EbitenEngine is the Ebitengine-backed audio engine. Voices created from
// it decode WAV effects once and share the PCM data.
type EbitenEngine struct {
	ctx   *eaudio.Context
	muted bool
}

// NewEbitenEngine creates the Ebitengine audio backend. When muted, all
// voices play at zero volume (headless mode).
func NewEbitenEngine(muted bool) *EbitenEngine {
	return &EbitenEngine{
		ctx:   sharedContext(),
		muted: muted,
	}
}

// pcmEffect holds a decoded effect as 16-bit stereo PCM at SampleRate.
type pcmEffect struct {
	data []byte
}

// Duration returns the effect length in milliseconds.
func (e *pcmEffect) Duration() int {
	// 2 channels * 2 bytes per sample
	return int(int64(len(e.data)) * 1000 / (4 * SampleRate))
}

// LoadEffect reads and decodes a WAV file.
func (eng *EbitenEngine) LoadEffect(path string) (Effect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read sound file %s: %w", path, err)
	}

	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode sound file %s: %w", path, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("cannot decode sound file %s: %w", path, err)
	}

	return &pcmEffect{data: pcm}, nil
}

// NewVoice creates a playback instance for a loaded effect.
func (eng *EbitenEngine) NewVoice(e Effect) Voice {
	return &ebitenVoice{
		ctx:    eng.ctx,
		pcm:    e.(*pcmEffect).data,
		muted:  eng.muted,
		volume: 1,
		pitch:  1,
	}
}

// ebitenVoice plays one instance of an effect through an audio.Player.
// The player is rebuilt on every Play so that the current pitch can be
// baked into the sample stream; volume and pan apply live.
type ebitenVoice struct {
	ctx    *eaudio.Context
	pcm    []byte
	muted  bool
	player *eaudio.Player
	pan    *panStream
	volume float64
	pitch  float64
}

func (v *ebitenVoice) Play(loop bool) {
	if v.player != nil {
		v.player.Close()
		v.player = nil
	}

	var src io.ReadSeeker = bytes.NewReader(v.pcm)
	size := int64(len(v.pcm))

	// Pitch is a frequency ratio: declare the source at rate*pitch and
	// resample down to the context rate.
	if v.pitch != 1 {
		from := int(float64(SampleRate) * v.pitch)
		if from < 1 {
			from = 1
		}
		src = eaudio.Resample(src, size, from, SampleRate)
		size = size * int64(SampleRate) / int64(from)
		size &^= 3 // whole stereo frames only
	}

	if loop {
		src = eaudio.NewInfiniteLoop(src, size)
	}

	v.pan = newPanStream(src, v.pan.value())

	player, err := v.ctx.NewPlayer(v.pan)
	if err != nil {
		return
	}
	v.player = player

	if v.muted {
		v.player.SetVolume(0)
	} else {
		v.player.SetVolume(v.volume)
	}
	v.player.Play()
}

func (v *ebitenVoice) Stop() {
	if v.player != nil {
		v.player.Close()
		v.player = nil
	}
}

func (v *ebitenVoice) IsPlaying() bool {
	return v.player != nil && v.player.IsPlaying()
}

func (v *ebitenVoice) SetVolume(volume float64) {
	v.volume = volume
	if v.player != nil && !v.muted {
		v.player.SetVolume(volume)
	}
}

func (v *ebitenVoice) SetPan(pan float64) {
	if v.pan != nil {
		v.pan.setValue(pan)
	} else {
		v.pan = newPanStream(nil, pan)
	}
}

func (v *ebitenVoice) SetPitch(pitch float64) {
	if pitch > 0 {
		v.pitch = pitch
	}
}

// panStream applies a constant-gain stereo pan to 16-bit little-endian
// stereo samples.
type panStream struct {
	src io.ReadSeeker
	mu  sync.Mutex
	pan float64 // -1 hard left, 0 center, 1 hard right
}

func newPanStream(src io.ReadSeeker, pan float64) *panStream {
	return &panStream{src: src, pan: pan}
}

func (s *panStream) value() float64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pan
}

func (s *panStream) setValue(pan float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pan = pan
}

func (s *panStream) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)

	s.mu.Lock()
	pan := s.pan
	s.mu.Unlock()

	if pan == 0 {
		return n, err
	}

	ls := math.Min(1, 1-pan)
	rs := math.Min(1, 1+pan)

	for i := 0; i+3 < n; i += 4 {
		l := int16(binary.LittleEndian.Uint16(p[i:]))
		r := int16(binary.LittleEndian.Uint16(p[i+2:]))
		binary.LittleEndian.PutUint16(p[i:], uint16(int16(float64(l)*ls)))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(int16(float64(r)*rs)))
	}

	return n, err
}

func (s *panStream) Seek(offset int64, whence int) (int64, error) {
	return s.src.Seek(offset, whence)
}
