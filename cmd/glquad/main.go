// Command glquad draws a textured, color-pulsing quad with glrender.
//
// Settings are read from glquad.toml in the working directory when present
// (see internal/config). With driver = "software" the quad is rendered
// headless for a fixed number of frames; otherwise a GLFW window is opened
// and the OpenGL driver is used until the window is closed.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/glrender"
	"github.com/gogpu/glrender/driver"
	_ "github.com/gogpu/glrender/driver/opengl"
	_ "github.com/gogpu/glrender/driver/software"
	"github.com/gogpu/glrender/internal/config"
	"github.com/gogpu/glrender/internal/watch"
	"github.com/gogpu/glrender/window"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("glquad failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	glrender.SetLogger(logger)

	if cfg.Headless() {
		return runHeadless(cfg)
	}
	return runWindowed(cfg, logger)
}

func runWindowed(cfg config.Config, logger *slog.Logger) (err error) {
	win, err := window.Open(
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithTitle(cfg.Window.Title),
		window.WithVSync(cfg.Window.VSync),
		window.WithContextVersion(4, 1),
		window.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// The GL driver loads its entry points from the current context.
	d, err := driver.Open(driver.NameOpenGL)
	if err != nil {
		return err
	}
	ctx, err := glrender.NewContext(d)
	if err != nil {
		return err
	}

	width, height := win.FramebufferSize()
	s, err := newScene(ctx, cfg, width, height)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.delete()) }()

	win.OnResize(func(width, height int) {
		if err := s.resize(width, height); err != nil {
			slog.Warn("resize failed", "width", width, "height", height, "err", err)
		}
	})

	reload, stop, err := hotReload(cfg, s)
	if err != nil {
		return err
	}
	defer stop()

	for !win.ShouldClose() {
		reload()
		if err := s.frame(); err != nil {
			return err
		}
		if err := win.SwapBuffers(); err != nil {
			return err
		}
		win.PollEvents()
	}
	return nil
}

func runHeadless(cfg config.Config) (err error) {
	d, err := driver.Open(driver.NameSoftware)
	if err != nil {
		return err
	}
	ctx, err := glrender.NewContext(d)
	if err != nil {
		return err
	}

	s, err := newScene(ctx, cfg, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.delete()) }()

	reload, stop, err := hotReload(cfg, s)
	if err != nil {
		return err
	}
	defer stop()

	for range cfg.Frames {
		reload()
		if err := s.frame(); err != nil {
			return err
		}
	}
	slog.Info("headless run finished", "frames", cfg.Frames, "driver", d.Name())
	return nil
}

// hotReload returns a per-frame hook that rebuilds the shader after its
// file changes, and a function that stops watching. Both are no-ops when
// hot reload is off.
func hotReload(cfg config.Config, s *scene) (reload, stop func(), err error) {
	if !cfg.HotReload {
		return func() {}, func() {}, nil
	}
	w, err := watch.New(cfg.Shader)
	if err != nil {
		return nil, nil, err
	}
	reload = func() {
		if !w.Changed() {
			return
		}
		if err := s.reload(); err != nil {
			slog.Warn("shader reload failed, keeping previous program", "path", cfg.Shader, "err", err)
		}
	}
	stop = func() {
		if err := w.Close(); err != nil {
			slog.Warn("stop watching shader", "err", err)
		}
	}
	return reload, stop, nil
}
