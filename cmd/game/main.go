package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/younwookim/sceneloop/internal/infrastructure/config"
	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
)

var exampleUsage = strings.TrimSpace(`
  game --scale 3 --log-level debug
  game --scene playing --stage demo --record session.json
  game --replay session.json
`)

// cliOptions are the flags that do not map onto EngineConfig.
type cliOptions struct {
	configPath   string
	settingsPath string
	record       string
	replay       string
	mute         bool
	volumeSet    bool
}

type runFunc func(cfg *config.EngineConfig, loader *config.Loader, opts cliOptions) error

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := logging.New("info", nil)

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get config subfs")
	}
	loader := config.NewFSLoader(fsys, "configs")

	root, err := newRootCommand(loader, runGame)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("game")
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. engine.json supplies the flag defaults; an
// optional TOML file overrides them, and flags given explicitly override both.
func newRootCommand(loader *config.Loader, run runFunc) (*cobra.Command, error) {
	cfg, err := loader.LoadEngine()
	if err != nil {
		return nil, err
	}

	var opts cliOptions
	maxDelta := cfg.MaxDelta()

	root := &cobra.Command{
		Use:           "game",
		Short:         "Fixed-timestep scene loop demo",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if changed["max-delta"] {
				cfg.Loop.MaxDeltaMs = int(maxDelta / time.Millisecond)
			}
			opts.volumeSet = changed["volume"]

			cfgFile := opts.configPath
			explicit := cfgFile != ""
			if !explicit {
				cfgFile = config.DefaultConfigPath()
			}
			if explicit && !config.FileExists(cfgFile) {
				return fmt.Errorf("config file %s: %w", cfgFile, fs.ErrNotExist)
			}
			if cfgFile != "" && config.FileExists(cfgFile) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := config.ApplyFileConfig(cfg, fc, changed); err != nil {
					return err
				}
				if fc.Volume != nil {
					opts.volumeSet = true
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if opts.record != "" && opts.replay != "" {
				return errors.New("--record and --replay cannot be used together")
			}
			return run(cfg, loader, opts)
		},
	}

	// Flags
	root.Flags().StringVar(&opts.configPath, "config", "", "path to config file (default: $HOME/.sceneloop/config.toml)")
	root.Flags().StringVar(&opts.settingsPath, "settings", "", "path to the settings file edited by the options screen")
	root.Flags().StringVar(&cfg.Display.Title, "title", cfg.Display.Title, "window title")
	root.Flags().IntVar(&cfg.Display.Scale, "scale", cfg.Display.Scale, "window scale factor")
	root.Flags().IntVar(&cfg.Loop.TickRate, "tick-rate", cfg.Loop.TickRate, "simulation ticks per second")
	root.Flags().DurationVar(&maxDelta, "max-delta", maxDelta, "largest frame time fed to the simulation")
	root.Flags().StringVar(&cfg.Scenes.Initial, "scene", cfg.Scenes.Initial, "initial scene")
	root.Flags().StringVar(&cfg.Scenes.Stage, "stage", cfg.Scenes.Stage, "stage played by the playing scene")
	root.Flags().StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")
	root.Flags().Float64Var(&cfg.Audio.Volume, "volume", cfg.Audio.Volume, "master volume in [0, 1]")
	root.Flags().BoolVar(&opts.mute, "mute", false, "run without an audio device")
	root.Flags().StringVar(&opts.record, "record", "", "record input to file (e.g., --record replay.json, or auto for a timestamped name)")
	root.Flags().StringVar(&opts.replay, "replay", "", "play back a recorded input file")

	return root, nil
}
