package timer

import (
	"testing"
	"testing/quick"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any sequence of clock advances, Elapsed(start, interval)
// returns true exactly once per time the accumulated delta since the last
// reset reaches interval, and resets start to the triggering time.
func TestElapsedTriggerCountProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("elapsed triggers once per interval reached", prop.ForAll(
		func(advances []int, interval int) bool {
			c := &manualClock{}
			tm := New(c.clock)
			tm.Start()

			start := 0
			triggers := 0
			expected := 0
			sinceReset := 0

			for _, adv := range advances {
				c.now += int64(adv)
				tm.BeginFrame()
				sinceReset += adv
				if sinceReset >= interval {
					expected++
					sinceReset = 0
				}
				if tm.Elapsed(&start, interval) {
					triggers++
					if start != tm.Time() {
						return false // start must reset to the triggering time
					}
				}
				tm.EndFrame()
			}

			return triggers == expected
		},
		gen.SliceOf(gen.IntRange(1, 50)),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

// Property: while step mode is on, BeginFrame never changes the frame
// time; only IncrementFrame does, and always by exactly StepIncrement.
func TestStepModeFrameTimeProperty(t *testing.T) {
	f := func(advances []uint16, increments uint8) bool {
		c := &manualClock{}
		tm := New(c.clock)
		tm.Start()
		tm.ToggleStepMode()

		for _, adv := range advances {
			c.now += int64(adv)
			tm.BeginFrame()
			if tm.FrameTime() != 0 {
				return false
			}
		}

		for i := 0; i < int(increments); i++ {
			tm.IncrementFrame()
			if tm.FrameTime() != StepIncrement {
				return false
			}
		}

		return true
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

// Property: outside step mode the frame deltas observed across a run sum
// to the total clock advance.
func TestFrameTimeAccumulationProperty(t *testing.T) {
	f := func(advances []uint8) bool {
		c := &manualClock{}
		tm := New(c.clock)
		tm.Start()
		tm.BeginFrame() // establish lastFrameStart at the epoch
		tm.EndFrame()

		total := 0
		sum := 0
		for _, adv := range advances {
			c.now += int64(adv)
			total += int(adv)
			tm.BeginFrame()
			sum += tm.FrameTime()
			tm.EndFrame()
		}

		return sum == total
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}
