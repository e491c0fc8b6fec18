// Package engine drives the contraption demo: the Ebitengine game loop,
// the fixed-timestep physics accumulator, input handling and the audio
// triggers fed by collision impacts.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"contraption/pkg/audio"
	"contraption/pkg/graphics"
	"contraption/pkg/machine"
	"contraption/pkg/timer"
)

// PhysicsStepMillis is the fixed simulation timestep. Frame deltas are
// accumulated and consumed in steps of this size, so the physics rate is
// independent of the display refresh rate.
const PhysicsStepMillis = 16

// maxFrameMillis caps a single frame delta so a stall cannot make the
// accumulator spiral.
const maxFrameMillis = 250

// Stepper is the physics side of the game loop. machine.World satisfies
// it; tests substitute a recording fake.
type Stepper interface {
	Step(dtMillis int)
	Poses() []machine.Pose
	Impacts() []machine.Impact
	Finished() bool
}

// Game runs one frame of the demo per display frame: timer, input,
// fixed-timestep physics, impact sounds, then drawing. It implements
// ebiten.Game.
type Game struct {
	log      *slog.Logger
	timer    *timer.Timer
	renderer *graphics.Renderer
	pool     *audio.Pool
	world    Stepper

	thumpSound  int // pool index of the impact sound
	accumulator int // unconsumed frame time in ms
	testPitch   float64

	levelDone bool
	headless  bool
}

// Options configures a Game.
type Options struct {
	Timer      *timer.Timer
	Renderer   *graphics.Renderer
	Pool       *audio.Pool
	World      Stepper
	ThumpSound int
	Headless   bool
	Log        *slog.Logger
}

// NewGame assembles the game loop. The timer should already be started;
// the level timer starts here.
func NewGame(opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	g := &Game{
		log:        log,
		timer:      opts.Timer,
		renderer:   opts.Renderer,
		pool:       opts.Pool,
		world:      opts.World,
		thumpSound: opts.ThumpSound,
		headless:   opts.Headless,
		testPitch:  1,
	}

	g.timer.StartLevelTimer()
	return g
}

// Update advances one animation frame. Part of ebiten.Game.
func (g *Game) Update() error {
	if !g.headless {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.timer.ToggleStepMode()
			g.log.Info("step mode toggled", "enabled", g.timer.StepMode())
		}
		if g.timer.StepMode() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.timer.IncrementFrame()
		}

		// Sound test: S plays the thump, arrows retune the last voice.
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.pool.Play(g.thumpSound)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
			g.testPitch += 0.1
			g.pool.Pitch(g.testPitch, audio.Last)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && g.testPitch > 0.2 {
			g.testPitch -= 0.1
			g.pool.Pitch(g.testPitch, audio.Last)
		}
	}

	g.tick()
	return nil
}

// tick runs the timer/physics/audio portion of one frame.
func (g *Game) tick() {
	g.timer.BeginFrame()

	if g.timer.StepMode() {
		// In step mode IncrementFrame injected the delta (or nothing);
		// consume exactly what was injected.
		g.stepPhysics(g.timer.FrameTime())
	} else {
		delta := g.timer.FrameTime()
		if delta > maxFrameMillis {
			delta = maxFrameMillis
		}
		g.stepPhysics(delta)
	}

	g.playImpacts()

	if !g.levelDone && g.world.Finished() {
		g.levelDone = true
		g.timer.StopLevelTimer()
		g.log.Info("machine finished", "levelMillis", g.timer.LevelElapsedTime())
	}

	g.timer.EndFrame()
}

// stepPhysics consumes delta milliseconds of frame time in fixed-size
// physics steps, carrying the remainder to the next frame.
func (g *Game) stepPhysics(deltaMillis int) {
	g.accumulator += deltaMillis
	for g.accumulator >= PhysicsStepMillis {
		g.world.Step(PhysicsStepMillis)
		g.accumulator -= PhysicsStepMillis
	}
}

// playImpacts turns this frame's collision impacts into positioned
// thump sounds. Requests beyond the instance pool are dropped by the
// pool itself.
func (g *Game) playImpacts() {
	for _, impact := range g.world.Impacts() {
		h := g.pool.Play(g.thumpSound)
		g.pool.Move(impact.X, impact.Y, h)

		volume := impact.Strength / 10
		if volume > 1 {
			volume = 1
		}
		g.pool.Volume(volume, h)
	}
}

// Draw renders one frame. Part of ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderFrame(&graphics.ScreenTarget{Image: screen})
}

// renderFrame composes the frame onto any target: background, machine
// parts, then the text overlay.
func (g *Game) renderFrame(target graphics.Target) {
	g.renderer.BeginFrame(target)
	g.renderer.DrawBackground()

	for _, pose := range g.world.Poses() {
		g.renderer.Draw(pose.SpriteID, pose.X, pose.Y, pose.Angle, 1, 1)
	}

	switch {
	case g.levelDone:
		g.renderer.DrawText(fmt.Sprintf("Done in %d ms", g.timer.LevelElapsedTime()))
	case g.timer.StepMode():
		g.renderer.DrawText("Step mode")
	default:
		g.renderer.DrawText(fmt.Sprintf("%d", g.timer.LevelElapsedTime()/1000))
	}

	g.renderer.EndFrame()
}

// Layout returns the fixed logical screen size. Part of ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Size()
}

// RunHeadless drives the loop without a display at roughly the display
// rate, drawing into a recording target. It returns when the machine
// finishes or the timeout expires (0 means run until finished).
func (g *Game) RunHeadless(timeout time.Duration) {
	w, h := g.renderer.Size()
	target := graphics.NewRecordingTarget(w, h)

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		g.tick()
		target.Reset()
		g.renderFrame(target)

		if g.levelDone {
			return
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			g.log.Info("headless timeout reached")
			return
		}
		time.Sleep(PhysicsStepMillis * time.Millisecond)
	}
}
