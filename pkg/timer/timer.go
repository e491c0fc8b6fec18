// Package timer provides the game timer: wall-clock frame timing with an
// optional single-step mode, a reusable interval trigger, and a level timer.
//
// The timer lets game events be managed by duration rather than frame by
// frame. In step mode time is paused and advanced by a fixed amount on
// request, which makes it possible to single-step the physics.
package timer

import "time"

// StepIncrement is the synthetic frame time injected by IncrementFrame
// while in step mode, in milliseconds.
const StepIncrement = 34

// Clock is a millisecond time source. The zero Timer uses the wall clock;
// tests inject a manual clock.
type Clock func() int64

// SystemClock returns milliseconds since an arbitrary process-local epoch.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}

// Timer tracks frame and level times in integer milliseconds. All methods
// are called from the main loop thread only.
type Timer struct {
	clock Clock

	startTime   int64 // clock value when Start was called
	currentTime int   // time since startTime, sampled at BeginFrame

	lastFrameStart int64 // clock value at the previous BeginFrame
	frameTime      int   // elapsed time for the previous frame

	levelStartTime  int64
	levelFinishTime int64
	levelTimerOn    bool

	stepMode bool
}

// New creates a timer driven by the given clock. A nil clock means the
// system wall clock.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock
	}
	return &Timer{clock: clock}
}

// Start records the timer epoch.
func (t *Timer) Start() {
	t.startTime = t.clock()
}

// Time returns the current time in milliseconds since Start. The value is
// sampled at BeginFrame and stays constant for the duration of the frame.
func (t *Timer) Time() int {
	return t.currentTime
}

// FrameTime returns the elapsed time for the last frame in milliseconds.
// It is only valid between BeginFrame and EndFrame.
func (t *Timer) FrameTime() int {
	return t.frameTime
}

// Elapsed reports whether interval milliseconds have passed since *start.
// On success it resets *start to the current time, setting things up for
// the next interval. Useful for measuring repeating time intervals.
func (t *Timer) Elapsed(start *int, interval int) bool {
	if t.currentTime >= *start+interval {
		*start = t.currentTime
		return true
	}
	return false
}

// BeginFrame signals that a new animation frame has begun. The timer
// samples the clock once so that Time returns the same value for the
// whole frame. Outside step mode it also computes the frame delta.
func (t *Timer) BeginFrame() {
	now := t.clock()
	t.currentTime = int(now - t.startTime)
	if !t.stepMode {
		t.frameTime = int(now - t.lastFrameStart)
	}
	t.lastFrameStart = now
}

// EndFrame signals that the animation frame has ended.
func (t *Timer) EndFrame() {
	t.frameTime = 0
}

// ToggleStepMode toggles in and out of step mode. In step mode time must
// be stepped manually using IncrementFrame.
func (t *Timer) ToggleStepMode() {
	t.stepMode = !t.stepMode
}

// StepMode reports whether the timer is in step mode.
func (t *Timer) StepMode() bool {
	return t.stepMode
}

// IncrementFrame advances the frame time by a fixed amount when in step
// mode. Does nothing if the timer is not in step mode.
func (t *Timer) IncrementFrame() {
	if t.stepMode {
		t.frameTime = StepIncrement
	}
}

// StartLevelTimer starts the level timer. Call at the start of a level.
func (t *Timer) StartLevelTimer() {
	t.levelTimerOn = true
	t.levelStartTime = t.clock()
}

// StopLevelTimer stops the level timer. Call at the end of a level.
func (t *Timer) StopLevelTimer() {
	t.levelTimerOn = false
	t.levelFinishTime = t.clock()
}

// LevelStartTime returns the clock value at which the level started.
func (t *Timer) LevelStartTime() int {
	return int(t.levelStartTime)
}

// LevelElapsedTime returns the time spent in the current level: running
// time while the level timer is on, the final time after it is stopped.
func (t *Timer) LevelElapsedTime() int {
	if t.levelTimerOn {
		return int(t.clock() - t.levelStartTime)
	}
	return int(t.levelFinishTime - t.levelStartTime)
}
