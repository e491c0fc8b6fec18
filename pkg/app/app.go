// Package app assembles the contraption demo from its parts: command
// line, logger, settings, audio, rendering, physics and the game loop.
package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"contraption/pkg/audio"
	"contraption/pkg/cli"
	"contraption/pkg/config"
	"contraption/pkg/engine"
	"contraption/pkg/graphics"
	"contraption/pkg/logger"
	"contraption/pkg/machine"
	"contraption/pkg/timer"
)

// Sprite registry slots. The machine and the renderer agree on these.
const (
	spriteBall = iota
	spriteDomino
	spriteRamp
)

// Application manages the application main logic.
type Application struct {
	config   *cli.Config
	log      *slog.Logger
	settings *config.Settings
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run executes the application: parse arguments, load settings and
// assets, build the machine, then hand control to the game loop.
func (app *Application) Run(args []string) error {
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("application started", "settings", app.config.SettingsPath)

	settings, err := config.Load(app.config.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	app.settings = settings

	renderer, err := app.buildRenderer()
	if err != nil {
		return err
	}

	pool, thump, err := app.buildSounds()
	if err != nil {
		return err
	}

	music := app.startMusic()

	width, height := renderer.Size()
	world := machine.New(width, height, machine.SpriteIDs{
		Ball:   spriteBall,
		Domino: spriteDomino,
		Ramp:   spriteRamp,
	})

	tm := timer.New(nil)
	tm.Start()
	if app.config.StepMode {
		tm.ToggleStepMode()
	}

	game := engine.NewGame(engine.Options{
		Timer:      tm,
		Renderer:   renderer,
		Pool:       pool,
		World:      world,
		ThumpSound: thump,
		Headless:   app.config.Headless,
		Log:        app.log,
	})

	if app.config.Headless {
		app.log.Info("headless mode", "timeout", app.config.Timeout)
		game.RunHeadless(app.config.Timeout)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(app.settings.Game.Name)
		if err := ebiten.RunGame(game); err != nil {
			return fmt.Errorf("game loop failed: %w", err)
		}
	}

	if music != nil {
		music.Stop()
	}

	app.log.Info("application terminated normally")
	return nil
}

func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

func (app *Application) initLogger() error {
	if err := logger.Init(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.Get()
	return nil
}

// buildRenderer creates the renderer and loads every image asset the
// settings name. A missing or unreadable asset is fatal.
func (app *Application) buildRenderer() (*graphics.Renderer, error) {
	renderer := graphics.NewRenderer(app.settings.Renderer.Width, app.settings.Renderer.Height)

	if err := renderer.LoadBackground(app.settings); err != nil {
		return nil, err
	}
	if err := renderer.LoadTextSheet(app.settings); err != nil {
		return nil, err
	}

	for id, name := range map[int]string{
		spriteBall:   "ball",
		spriteDomino: "domino",
		spriteRamp:   "ramp",
	} {
		if err := renderer.Load(id, name, app.settings); err != nil {
			return nil, err
		}
	}

	app.log.Info("renderer ready",
		"width", app.settings.Renderer.Width,
		"height", app.settings.Renderer.Height,
		"sprites", renderer.Manager().Len())
	return renderer, nil
}

// buildSounds loads the sound catalog and allocates the configured
// playback instances. The first sound is the impact thump; with no
// sounds configured the game runs silent.
func (app *Application) buildSounds() (*audio.Pool, int, error) {
	backend := audio.NewEbitenEngine(app.config.Headless)
	pool := audio.NewPool(backend, app.settings.Renderer.Width, app.settings.Renderer.Height, app.log)

	for _, entry := range app.settings.Sounds {
		index, err := pool.Load(entry.File)
		if err != nil {
			return nil, -1, fmt.Errorf("failed to load sound %s: %w", entry.File, err)
		}
		pool.CreateInstances(index, entry.Instances)
	}

	thump := -1
	if pool.Count() > 0 {
		thump = 0
	} else {
		app.log.Warn("no sounds configured, running silent")
	}
	return pool, thump, nil
}

// startMusic begins background music playback if the settings configure
// it. Music failures are logged and skipped, never fatal.
func (app *Application) startMusic() *audio.Music {
	if app.settings.Music.File == "" || app.settings.Music.SoundFont == "" {
		return nil
	}

	music := audio.NewMusic(app.config.Headless, app.log)
	if err := music.LoadSoundFont(app.settings.Music.SoundFont); err != nil {
		app.log.Warn("failed to load soundfont, music disabled", "error", err)
		return nil
	}
	if err := music.Play(app.settings.Music.File); err != nil {
		app.log.Warn("failed to start music", "error", err)
		return nil
	}
	return music
}
