package window

import "log/slog"

// Option configures a Window during creation.
//
// Example:
//
//	w, err := window.Open(
//		window.WithSize(1280, 720),
//		window.WithTitle("quad"),
//		window.WithVSync(false),
//	)
type Option func(*options)

// options holds window creation settings.
type options struct {
	width        int
	height       int
	title        string
	vsync        bool
	resizable    bool
	major, minor int
	closeOnEsc   bool
	logger       *slog.Logger
}

// defaultOptions returns a 960x540 resizable window with an OpenGL 4.1
// core context and vsync on.
func defaultOptions() options {
	return options{
		width:      960,
		height:     540,
		title:      "glrender",
		vsync:      true,
		resizable:  true,
		major:      4,
		minor:      1,
		closeOnEsc: true,
	}
}

// WithSize sets the initial window size in screen coordinates.
// Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithVSync sets the swap interval to 1 (on) or 0 (off).
func WithVSync(enabled bool) Option {
	return func(o *options) {
		o.vsync = enabled
	}
}

// WithResizable controls whether the user can resize the window.
func WithResizable(enabled bool) Option {
	return func(o *options) {
		o.resizable = enabled
	}
}

// WithContextVersion requests an OpenGL core profile context version.
func WithContextVersion(major, minor int) Option {
	return func(o *options) {
		o.major, o.minor = major, minor
	}
}

// WithLogger sets the logger for window lifecycle messages. By default the
// glrender package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCloseOnEscape makes the Escape key request the window to close.
func WithCloseOnEscape(enabled bool) Option {
	return func(o *options) {
		o.closeOnEsc = enabled
	}
}

func (o options) swapInterval() int {
	if o.vsync {
		return 1
	}
	return 0
}
