package glrender

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Defaults: every bind is issued, errors are only returned
//	ctx, err := glrender.NewContext(d)
//
//	// Skip binds the mirror says are redundant, abort on any GL error
//	ctx, err := glrender.NewContext(d,
//		glrender.WithBindElision(true),
//		glrender.WithErrorHandler(func(err *glrender.GLError) { log.Fatal(err) }),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	elideBinds bool
	onError    func(*GLError)
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		elideBinds: false,
		onError:    nil,
	}
}

// WithBindElision makes the Context skip bind calls when its binding mirror
// already shows the object bound.
//
// Only enable this when nothing else issues GL calls on the same context;
// the mirror is not refreshed from the driver.
func WithBindElision(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.elideBinds = enabled
	}
}

// WithErrorHandler installs a callback run for every *GLError the Context
// reports, before the error is returned to the wrapper's caller. Use it to
// make GL errors fatal or to count them.
func WithErrorHandler(fn func(*GLError)) ContextOption {
	return func(o *contextOptions) {
		o.onError = fn
	}
}
