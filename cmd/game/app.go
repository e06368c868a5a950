package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"github.com/younwookim/sceneloop/internal/application/game"
	"github.com/younwookim/sceneloop/internal/application/replay"
	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/scene/options"
	"github.com/younwookim/sceneloop/internal/application/scene/pause"
	"github.com/younwookim/sceneloop/internal/application/scene/playing"
	"github.com/younwookim/sceneloop/internal/application/scene/title"
	"github.com/younwookim/sceneloop/internal/application/system"
	"github.com/younwookim/sceneloop/internal/domain/entity"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
	"github.com/younwookim/sceneloop/internal/infrastructure/host"
	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
	"github.com/younwookim/sceneloop/internal/infrastructure/render"
	"github.com/younwookim/sceneloop/internal/infrastructure/sound"
)

// sceneDeps are the collaborators shared by the scene constructors.
type sceneDeps struct {
	input   system.Controls
	sound   *sound.Mixer
	store   *config.SettingsStore
	face    text.Face
	loader  *config.Loader
	session *playing.Session
	screenW int
	screenH int
	log     zerolog.Logger

	// blocking runs stage loads and settings saves on the game goroutine,
	// so recorded input lines up with the same ticks on replay.
	blocking bool
}

// newRegistry registers every scene of the game.
func newRegistry(d sceneDeps) (*scene.Registry, error) {
	loadStage := func(ctx context.Context, name string) (*entity.Stage, error) {
		return system.ReadStage(ctx, d.loader, name)
	}
	sceneLog := func(id scene.ID) zerolog.Logger {
		return d.log.With().Str("scene", string(id)).Logger()
	}

	scenes := []struct {
		id   scene.ID
		ctor scene.Constructor
	}{
		{scene.TitleID, func(nav scene.Navigator) scene.Scene {
			return title.New(nav, d.input, d.sound, d.face, d.screenW, d.screenH, sceneLog(scene.TitleID))
		}},
		{scene.OptionsID, func(nav scene.Navigator) scene.Scene {
			o := options.New(nav, d.input, d.sound, d.store, d.face, d.screenW, d.screenH, sceneLog(scene.OptionsID))
			o.SetBlocking(d.blocking)
			return o
		}},
		{scene.PlayingID, func(nav scene.Navigator) scene.Scene {
			p := playing.New(nav, d.input, loadStage, d.session, d.screenW, d.screenH, sceneLog(scene.PlayingID))
			p.SetBlocking(d.blocking)
			return p
		}},
		{scene.PauseID, func(nav scene.Navigator) scene.Scene {
			return pause.New(nav, d.input, d.screenW, d.screenH)
		}},
	}

	r := scene.NewRegistry()
	for _, s := range scenes {
		if err := r.Register(s.id, s.ctor); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// requirements lists what must be in place before the first scene is built.
func requirements(cfg *config.EngineConfig, loader *config.Loader) []game.Requirement {
	return []game.Requirement{
		{Name: "stage", Check: func() error {
			_, err := loader.LoadStage(cfg.Scenes.Stage)
			return err
		}},
		{Name: "tick rate", Check: func() error {
			if cfg.Step() <= 0 {
				return fmt.Errorf("tick rate %d gives no step", cfg.Loop.TickRate)
			}
			return nil
		}},
	}
}

// loadSettings reads the player settings. The volume given by flag or config
// file wins over the saved one.
func loadSettings(cfg *config.EngineConfig, opts cliOptions, log zerolog.Logger) *config.SettingsStore {
	path := opts.settingsPath
	if path == "" {
		path = config.DefaultSettingsPath()
	}

	settings := config.Settings{Volume: cfg.Audio.Volume}
	if config.FileExists(path) {
		s, err := config.LoadSettings(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("settings unreadable, using defaults")
		} else {
			settings = s
		}
	}
	if opts.volumeSet {
		settings.Volume = cfg.Audio.Volume
	}
	return config.NewSettingsStore(path, settings)
}

func runGame(cfg *config.EngineConfig, loader *config.Loader, opts cliOptions) error {
	log := logging.New(cfg.Logging.Level, nil)
	store := loadSettings(cfg, opts, log)

	var audioCtx *audio.Context
	if !opts.mute {
		rate := cfg.Audio.SampleRate
		if rate <= 0 {
			rate = sound.DefaultSampleRate
		}
		audioCtx = audio.NewContext(rate)
	}
	mixer := sound.NewMixer(audioCtx, store.Get().Volume, log)

	renderer := render.NewRenderer(cfg.Display, cfg.Render)
	renderer.SetShowFPS(func() bool { return store.Get().ShowFPS })
	h := host.New(renderer, log)

	initial := scene.ID(cfg.Scenes.Initial)

	var mgr *game.Manager
	sampler := system.KeyboardSampler(system.DefaultBindings())
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return err
		}
		if data.TickRate != cfg.Loop.TickRate {
			log.Warn().Int("recorded", data.TickRate).Int("configured", cfg.Loop.TickRate).Msg("using the recorded tick rate")
			cfg.Loop.TickRate = data.TickRate
		}
		if data.Scene != "" {
			initial = scene.ID(data.Scene)
		}
		log.Info().Str("file", opts.replay).Int("frames", len(data.Frames)).Msg("replaying")
		sampler = system.ReplaySampler(replay.NewReplayer(*data), func() {
			log.Info().Msg("replay finished")
			mgr.Exit()
		})
	}

	input := system.NewInputSystem(cfg.Input, sampler)
	var recorder *replay.Recorder
	if opts.record == "auto" {
		opts.record = replay.GenerateFilename()
	}
	if opts.record != "" {
		recorder = replay.NewRecorder(string(initial), cfg.Loop.TickRate)
		input.Record(recorder)
		log.Info().Str("file", opts.record).Msg("recording enabled")
	}

	registry, err := newRegistry(sceneDeps{
		input:   input,
		sound:   mixer,
		store:   store,
		face:    renderer.Face(),
		loader:  loader,
		session: &playing.Session{Stage: cfg.Scenes.Stage},
		screenW: cfg.Display.ScreenWidth,
		screenH: cfg.Display.ScreenHeight,
		log:     log,

		blocking: recorder != nil || opts.replay != "",
	})
	if err != nil {
		return err
	}

	mgr, err = game.New(registry, game.Options{
		Step:         cfg.Step(),
		MaxDelta:     cfg.MaxDelta(),
		Logger:       log,
		Render:       renderer,
		Input:        input,
		Audio:        mixer,
		Host:         h,
		Requirements: requirements(cfg, loader),
	})
	if err != nil {
		return err
	}
	h.Attach(mgr)

	// A failed Run leaves the manager halted with its error overlay printed;
	// the window still opens so the player can read it.
	_ = mgr.Run(initial)

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale, cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	runErr := ebiten.RunGame(h)
	if err := mgr.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}

	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(opts.record); err != nil {
			log.Error().Err(err).Msg("failed to save recording")
		} else {
			log.Info().Str("file", opts.record).Int("frames", recorder.FrameCount()).Msg("recording saved")
		}
	}

	return errors.Join(runErr, mgr.Err())
}
