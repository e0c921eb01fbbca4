// Package config loads the glquad settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glrender/driver"
)

// DefaultPath is the settings file read when no other path is given.
const DefaultPath = "glquad.toml"

// Window holds window creation settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Config is the glquad configuration.
//
//	driver = "software"
//	log_level = "debug"
//	shader = "res/shaders/Basic.shader"
//	texture = "res/textures/logo.png"
//	hot_reload = true
//	frames = 120
//
//	[window]
//	width = 1280
//	height = 720
//	title = "quad"
//	vsync = false
type Config struct {
	// Driver selects the graphics driver. Empty picks the registry default.
	Driver string `toml:"driver"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	Shader  string `toml:"shader"`
	Texture string `toml:"texture"`

	// HotReload rebuilds the shader when its file changes.
	HotReload bool `toml:"hot_reload"`

	// Frames is the number of frames rendered by a headless run.
	Frames int `toml:"frames"`

	Window Window `toml:"window"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Shader:   "res/shaders/Basic.shader",
		Texture:  "res/textures/logo.png",
		Frames:   60,
		Window: Window{
			Width:  960,
			Height: 540,
			Title:  "glrender",
			VSync:  true,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var (
			derr *toml.DecodeError
			serr *toml.StrictMissingError
		)
		if errors.As(err, &serr) {
			keys := make([]string, len(serr.Errors))
			for i, e := range serr.Errors {
				keys[i] = strings.Join(e.Key(), ".")
			}
			return cfg, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("config: %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "", driver.NameOpenGL, driver.NameSoftware:
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Shader == "" {
		errs = append(errs, errors.New("shader path is empty"))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", c.Frames))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// Headless reports whether the configuration asks for the software driver,
// which renders without a window.
func (c Config) Headless() bool {
	return c.Driver == driver.NameSoftware
}
