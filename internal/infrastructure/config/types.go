package config

import (
	"errors"
	"fmt"
	"time"
)

// EngineConfig is the root config for engine.json
type EngineConfig struct {
	Display DisplayConfig `json:"display"`
	Loop    LoopConfig    `json:"loop"`
	Input   InputConfig   `json:"input"`
	Audio   AudioConfig   `json:"audio"`
	Render  RenderConfig  `json:"render"`
	Scenes  ScenesConfig  `json:"scenes"`
	Logging LoggingConfig `json:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Title        string `json:"title"`
}

// LoopConfig configures the fixed-timestep loop
type LoopConfig struct {
	TickRate   int `json:"tickRate"`   // Simulation ticks per second
	MaxDeltaMs int `json:"maxDeltaMs"` // Per-frame clamp on elapsed time
}

// InputConfig configures menu key repeat, in ticks
type InputConfig struct {
	RepeatDelay    int `json:"repeatDelay"`
	RepeatInterval int `json:"repeatInterval"`
}

type AudioConfig struct {
	SampleRate int     `json:"sampleRate"`
	Volume     float64 `json:"volume"`
}

// RenderConfig configures the loading indicator and background blur
type RenderConfig struct {
	LoadingDelay int `json:"loadingDelay"` // Frames before "Now Loading" appears
	BlurScale    int `json:"blurScale"`    // Downsample factor for background blur
}

type ScenesConfig struct {
	Initial string `json:"initial"`
	Stage   string `json:"stage"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

// Step returns the length of one simulation tick
func (c *EngineConfig) Step() time.Duration {
	return time.Second / time.Duration(c.Loop.TickRate)
}

// MaxDelta returns the per-frame clamp
func (c *EngineConfig) MaxDelta() time.Duration {
	return time.Duration(c.Loop.MaxDeltaMs) * time.Millisecond
}

// Validate checks the values the loop cannot run without
func (c *EngineConfig) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display: invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Display.Scale <= 0 {
		errs = append(errs, fmt.Errorf("display: scale must be positive, got %d", c.Display.Scale))
	}
	if c.Loop.TickRate <= 0 || c.Loop.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("loop: tick rate out of range: %d", c.Loop.TickRate))
	}
	if c.Loop.MaxDeltaMs <= 0 {
		errs = append(errs, fmt.Errorf("loop: maxDeltaMs must be positive, got %d", c.Loop.MaxDeltaMs))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be within [0, 1], got %g", c.Audio.Volume))
	}
	if c.Scenes.Initial == "" {
		errs = append(errs, errors.New("scenes: initial scene is required"))
	}
	return errors.Join(errs...)
}
