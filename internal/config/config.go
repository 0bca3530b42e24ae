package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the immutable startup configuration. It is built once in main
// and threaded through initialization; nothing mutates it afterwards.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// SampleCount is the MSAA sample count for the scene HDR target.
	// 1 disables multisampling.
	SampleCount int `toml:"sample_count"`

	VSync bool `toml:"vsync"`

	// FPSLimit caps the frame rate when vsync is off. 0 means uncapped.
	FPSLimit int `toml:"fps_limit"`

	// ClearColor is the HDR target clear color, linear RGBA.
	ClearColor [4]float32 `toml:"clear_color"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Title:       "heaven",
		Width:       900,
		Height:      600,
		SampleCount: 1,
		VSync:       true,
		ClearColor:  [4]float32{0, 0, 0, 1},
	}
}

// Load reads TOML overrides from path on top of Default. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("window size %dx%d is invalid", c.Width, c.Height)
	}
	if c.FPSLimit < 0 {
		return fmt.Errorf("fps_limit %d is negative", c.FPSLimit)
	}
	switch c.SampleCount {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("sample_count %d is not 1, 2, 4 or 8", c.SampleCount)
	}
}
