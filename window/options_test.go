package window

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.width != 960 || o.height != 540 {
		t.Errorf("default size = %dx%d, want 960x540", o.width, o.height)
	}
	if o.major != 4 || o.minor != 1 {
		t.Errorf("default context = %d.%d, want 4.1", o.major, o.minor)
	}
	if !o.vsync || o.swapInterval() != 1 {
		t.Errorf("vsync should default on with swap interval 1, got %v/%d", o.vsync, o.swapInterval())
	}
	if !o.closeOnEsc {
		t.Error("Escape should close the window by default")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		check func(t *testing.T, o options)
	}{
		{
			name: "size",
			opts: []Option{WithSize(640, 480)},
			check: func(t *testing.T, o options) {
				if o.width != 640 || o.height != 480 {
					t.Errorf("size = %dx%d, want 640x480", o.width, o.height)
				}
			},
		},
		{
			name: "non-positive size keeps default",
			opts: []Option{WithSize(0, -1)},
			check: func(t *testing.T, o options) {
				if o.width != 960 || o.height != 540 {
					t.Errorf("size = %dx%d, want 960x540", o.width, o.height)
				}
			},
		},
		{
			name: "title",
			opts: []Option{WithTitle("Hello World")},
			check: func(t *testing.T, o options) {
				if o.title != "Hello World" {
					t.Errorf("title = %q", o.title)
				}
			},
		},
		{
			name: "vsync off",
			opts: []Option{WithVSync(false)},
			check: func(t *testing.T, o options) {
				if o.swapInterval() != 0 {
					t.Errorf("swapInterval() = %d, want 0", o.swapInterval())
				}
			},
		},
		{
			name: "context version",
			opts: []Option{WithContextVersion(3, 3)},
			check: func(t *testing.T, o options) {
				if o.major != 3 || o.minor != 3 {
					t.Errorf("context = %d.%d, want 3.3", o.major, o.minor)
				}
			},
		},
		{
			name: "fixed size without escape",
			opts: []Option{WithResizable(false), WithCloseOnEscape(false)},
			check: func(t *testing.T, o options) {
				if o.resizable || o.closeOnEsc {
					t.Errorf("resizable=%v closeOnEsc=%v, want both false", o.resizable, o.closeOnEsc)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			tt.check(t, o)
		})
	}
}

func TestClosedWindow(t *testing.T) {
	w := &Window{opts: defaultOptions()}
	if !w.ShouldClose() {
		t.Error("closed window should report ShouldClose")
	}
	if err := w.SwapBuffers(); err != ErrClosed {
		t.Errorf("SwapBuffers() = %v, want ErrClosed", err)
	}
	if width, height := w.FramebufferSize(); width != 0 || height != 0 {
		t.Errorf("FramebufferSize() = %dx%d, want 0x0", width, height)
	}
	w.Close()
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	o := defaultOptions()
	WithLogger(l)(&o)
	w := &Window{opts: o}
	if w.log() != l {
		t.Fatal("log() should return the configured logger")
	}
	w.log().Info("probe")
	if !strings.Contains(buf.String(), "probe") {
		t.Errorf("message not written to configured logger: %q", buf.String())
	}

	if (&Window{opts: defaultOptions()}).log() == nil {
		t.Error("log() without WithLogger should fall back to the package logger")
	}
}
