package timer

import "testing"

// manualClock is a hand-advanced millisecond clock for tests.
type manualClock struct {
	now int64
}

func (c *manualClock) clock() int64 {
	return c.now
}

func newTestTimer() (*Timer, *manualClock) {
	c := &manualClock{}
	return New(c.clock), c
}

func TestTimeSampledAtBeginFrame(t *testing.T) {
	tm, c := newTestTimer()
	c.now = 1000
	tm.Start()

	c.now = 1250
	tm.BeginFrame()
	if got := tm.Time(); got != 250 {
		t.Errorf("Time() = %d, want 250", got)
	}

	// Time stays constant for the duration of the frame.
	c.now = 1300
	if got := tm.Time(); got != 250 {
		t.Errorf("Time() = %d after clock advance, want 250", got)
	}
}

func TestFrameTimeDelta(t *testing.T) {
	tm, c := newTestTimer()
	tm.Start()

	c.now = 16
	tm.BeginFrame()
	tm.EndFrame()

	c.now = 33
	tm.BeginFrame()
	if got := tm.FrameTime(); got != 17 {
		t.Errorf("FrameTime() = %d, want 17", got)
	}
	tm.EndFrame()
	if got := tm.FrameTime(); got != 0 {
		t.Errorf("FrameTime() = %d after EndFrame, want 0", got)
	}
}

func TestElapsedTriggersAndResets(t *testing.T) {
	tm, c := newTestTimer()
	tm.Start()

	start := 0
	c.now = 99
	tm.BeginFrame()
	if tm.Elapsed(&start, 100) {
		t.Error("Elapsed should be false at 99ms of a 100ms interval")
	}
	if start != 0 {
		t.Errorf("start = %d, should be untouched on false return", start)
	}

	c.now = 100
	tm.BeginFrame()
	if !tm.Elapsed(&start, 100) {
		t.Error("Elapsed should be true at exactly 100ms")
	}
	if start != 100 {
		t.Errorf("start = %d, want 100 after trigger", start)
	}

	// Same frame, interval already consumed.
	if tm.Elapsed(&start, 100) {
		t.Error("Elapsed should not trigger twice for one interval")
	}
}

func TestStepModeFreezesFrameTime(t *testing.T) {
	tm, c := newTestTimer()
	tm.Start()

	c.now = 16
	tm.BeginFrame()
	tm.EndFrame()

	tm.ToggleStepMode()
	if !tm.StepMode() {
		t.Fatal("StepMode() should be true after toggle")
	}

	for i := 0; i < 5; i++ {
		c.now += 1000
		tm.BeginFrame()
		if got := tm.FrameTime(); got != 0 {
			t.Fatalf("FrameTime() = %d in step mode, want 0", got)
		}
	}

	tm.IncrementFrame()
	if got := tm.FrameTime(); got != StepIncrement {
		t.Errorf("FrameTime() = %d after IncrementFrame, want %d", got, StepIncrement)
	}
}

func TestIncrementFrameOutsideStepMode(t *testing.T) {
	tm, _ := newTestTimer()
	tm.Start()
	tm.IncrementFrame()
	if got := tm.FrameTime(); got != 0 {
		t.Errorf("IncrementFrame outside step mode set FrameTime to %d", got)
	}
}

func TestToggleStepModeRoundTrip(t *testing.T) {
	tm, c := newTestTimer()
	tm.Start()
	tm.ToggleStepMode()
	tm.ToggleStepMode()
	if tm.StepMode() {
		t.Fatal("two toggles should leave step mode off")
	}

	c.now = 10
	tm.BeginFrame()
	c.now = 30
	tm.BeginFrame()
	if got := tm.FrameTime(); got != 20 {
		t.Errorf("FrameTime() = %d after leaving step mode, want 20", got)
	}
}

func TestLevelTimer(t *testing.T) {
	tm, c := newTestTimer()
	tm.Start()

	c.now = 500
	tm.StartLevelTimer()
	if got := tm.LevelStartTime(); got != 500 {
		t.Errorf("LevelStartTime() = %d, want 500", got)
	}

	c.now = 1700
	if got := tm.LevelElapsedTime(); got != 1200 {
		t.Errorf("LevelElapsedTime() = %d while running, want 1200", got)
	}

	tm.StopLevelTimer()
	c.now = 9999
	if got := tm.LevelElapsedTime(); got != 1200 {
		t.Errorf("LevelElapsedTime() = %d after stop, want 1200", got)
	}
}
