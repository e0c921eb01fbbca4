package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Width != 960 || cfg.Window.Height != 540 || !cfg.Window.VSync {
		t.Errorf("default window = %+v", cfg.Window)
	}
	if cfg.Headless() {
		t.Error("default configuration should open a window")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
driver = "software"
log_level = "debug"
hot_reload = true
frames = 10

[window]
width = 1280
title = "quad"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Headless() || !cfg.HotReload || cfg.Frames != 10 {
		t.Errorf("top-level settings = %+v", cfg)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", level)
	}
	// Unset keys keep their defaults.
	want := Window{Width: 1280, Height: 540, Title: "quad", VSync: true}
	if cfg.Window != want {
		t.Errorf("Window = %+v, want %+v", cfg.Window, want)
	}
	if cfg.Shader != Default().Shader {
		t.Errorf("Shader = %q, want default", cfg.Shader)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "driver = \n", "glquad.toml:1"},
		{"unknown key", "drvier = \"opengl\"\n", "drvier"},
		{"wrong type", "frames = \"many\"\n", ""},
		{"invalid value", "[window]\nwidth = 0\n", "window size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{"valid opengl", func(c *Config) { c.Driver = "opengl" }, nil},
		{"unknown driver", func(c *Config) { c.Driver = "vulkan" }, []string{"unknown driver"}},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, []string{"invalid log level"}},
		{"no shader", func(c *Config) { c.Shader = "" }, []string{"shader path"}},
		{"zero frames", func(c *Config) { c.Frames = 0 }, []string{"frames"}},
		{
			"several problems",
			func(c *Config) {
				c.Window.Height = -1
				c.LogLevel = "verbose"
			},
			[]string{"window size", "invalid log level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, missing %q", err, want)
				}
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Config{LogLevel: tt.in}.Level()
			if err != nil || got != tt.want {
				t.Errorf("Level(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}
