package audio

import "log/slog"

// DistanceScale divides world positions before they feed the stereo
// positioning math.
const DistanceScale = 500.0

// Handle identifies one playback instance: (sound index, instance index).
// Play and Loop return the handle they started so callers can adjust that
// exact instance later.
type Handle struct {
	Sound    int
	Instance int
}

// Last is the convenience handle meaning "whatever Play or Loop touched
// most recently".
var Last = Handle{Sound: -1, Instance: -1}

// Pool manages the sound effect catalog and a fixed pool of playback
// instances per effect. Effects are indexed by load order. A play request
// with no idle instance is silently dropped; bad indices are ignored.
// Single-threaded use from the main loop is assumed.
type Pool struct {
	engine  Engine
	log     *slog.Logger
	effects []Effect
	voices  [][]Voice

	// Screen center, the listener position for Move.
	centerX float64
	centerY float64

	lastPlayed Handle
}

// NewPool creates a sound pool over the given backend. Screen dimensions
// place the listener for positioned sounds.
func NewPool(engine Engine, screenWidth, screenHeight int, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	return &Pool{
		engine:     engine,
		log:        log,
		centerX:    float64(screenWidth) / 2,
		centerY:    float64(screenHeight) / 2,
		lastPlayed: Handle{Sound: -1, Instance: -1},
	}
}

// Load loads a sound effect file and appends it to the catalog.
// Returns the index of the new effect.
func (p *Pool) Load(path string) (int, error) {
	effect, err := p.engine.LoadEffect(path)
	if err != nil {
		return -1, err
	}
	p.effects = append(p.effects, effect)
	p.voices = append(p.voices, nil)
	p.log.Debug("sound loaded", "path", path, "index", len(p.effects)-1)
	return len(p.effects) - 1, nil
}

// CreateInstances allocates n playback instances for the effect at index.
func (p *Pool) CreateInstances(index, n int) {
	if index < 0 || index >= len(p.effects) {
		return
	}
	voices := make([]Voice, n)
	for i := range voices {
		voices[i] = p.engine.NewVoice(p.effects[index])
	}
	p.voices[index] = voices
}

// Count returns the number of effects in the catalog.
func (p *Pool) Count() int {
	return len(p.effects)
}

// InstanceCount returns the number of instances allocated for a sound.
func (p *Pool) InstanceCount(index int) int {
	if index < 0 || index >= len(p.voices) {
		return 0
	}
	return len(p.voices[index])
}

// NextInstance returns the index of the lowest-numbered idle instance of
// the sound at index, or the instance count when every instance is busy.
// Callers must check for the saturation sentinel.
func (p *Pool) NextInstance(index int) int {
	voices := p.voices[index]
	instance := 0
	for instance < len(voices) && voices[instance].IsPlaying() {
		instance++
	}
	return instance
}

// Play plays a sound once. If no idle instance exists the request is
// silently dropped. The returned handle is also recorded as the target
// for subsequent Last-addressed calls, even for a dropped request.
func (p *Pool) Play(index int) Handle {
	return p.start(index, false)
}

// Loop plays a sound looped until stopped.
func (p *Pool) Loop(index int) Handle {
	return p.start(index, true)
}

func (p *Pool) start(index int, loop bool) Handle {
	if index < 0 || index >= len(p.effects) {
		return Handle{Sound: -1, Instance: -1}
	}

	instance := p.NextInstance(index)
	if instance < len(p.voices[index]) {
		p.voices[index][instance].Play(loop)
	} else {
		p.log.Debug("sound dropped, no idle instance", "index", index)
	}

	p.lastPlayed = Handle{Sound: index, Instance: instance}
	return p.lastPlayed
}

// Stop halts one playback instance.
func (p *Pool) Stop(h Handle) {
	if v := p.voice(h); v != nil {
		v.Stop()
	}
}

// Move positions the sound source at (x, y) in pixel coordinates. The
// listener sits at the screen center; positions are scaled down by
// DistanceScale before panning and attenuation are derived.
func (p *Pool) Move(x, y float64, h Handle) {
	v := p.voice(h)
	if v == nil {
		return
	}

	dx := (x - p.centerX) / DistanceScale
	dy := (y - p.centerY) / DistanceScale

	pan := dx
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	v.SetPan(pan)

	// Simple inverse distance rolloff.
	dist := dx*dx + dy*dy
	v.SetVolume(1 / (1 + dist))
}

// Pitch sets the playback frequency ratio of one instance.
func (p *Pool) Pitch(pitch float64, h Handle) {
	if v := p.voice(h); v != nil {
		v.SetPitch(pitch)
	}
}

// Volume sets the volume of one instance.
func (p *Pool) Volume(volume float64, h Handle) {
	if v := p.voice(h); v != nil {
		v.SetVolume(volume)
	}
}

// voice resolves a handle to a voice. Negative components substitute the
// last-played pair; anything out of range resolves to nil and the call
// that asked becomes a no-op.
func (p *Pool) voice(h Handle) Voice {
	if h.Sound < 0 {
		h.Sound = p.lastPlayed.Sound
	}
	if h.Instance < 0 {
		h.Instance = p.lastPlayed.Instance
	}
	if h.Sound < 0 || h.Sound >= len(p.voices) {
		return nil
	}
	voices := p.voices[h.Sound]
	if h.Instance < 0 || h.Instance >= len(voices) {
		return nil
	}
	return voices[h.Instance]
}
