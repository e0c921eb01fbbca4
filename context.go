package glrender

import (
	"maps"
	"runtime"

	"github.com/gogpu/glrender/driver"
)

// maxErrorDrain bounds the error queue drain. A lost context can report
// errors forever.
const maxErrorDrain = 32

// Bindings is the active-binding set of a graphics context.
//
// OpenGL keeps at most one object of each kind bound at a time. The
// Context mirrors that state here as calls go through it, so code can see
// what is bound without querying the driver.
type Bindings struct {
	ArrayBuffer        uint32
	ElementArrayBuffer uint32
	VertexArray        uint32
	Program            uint32

	// ActiveTextureUnit is 0-based.
	ActiveTextureUnit uint32

	// Textures maps 0-based texture units to bound 2D textures.
	Textures map[uint32]uint32
}

// Context is the graphics context every wrapper borrows.
//
// It owns the driver, the binding mirror and error checking: each driver
// call made by a wrapper goes through the Context, which drains stale
// errors, issues the call and checks the error queue afterwards.
//
// A Context is not safe for concurrent use. Like the GL context it wraps,
// it belongs to the thread that made the context current.
type Context struct {
	drv  driver.Driver
	opts contextOptions

	bindings Bindings

	// elements records the element buffer captured by each vertex array.
	elements map[uint32]uint32
}

// NewContext creates a Context over an initialized driver.
//
// Example:
//
//	d, err := driver.Open("")
//	if err != nil {
//		return err
//	}
//	ctx, err := glrender.NewContext(d)
func NewContext(d driver.Driver, opts ...ContextOption) (*Context, error) {
	if d == nil {
		return nil, ErrNilDriver
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		drv:      d,
		opts:     o,
		bindings: Bindings{Textures: make(map[uint32]uint32)},
		elements: make(map[uint32]uint32),
	}
	Logger().Info("graphics context created", "driver", d.Name(), "version", d.Version())
	return c, nil
}

// Driver returns the underlying driver.
func (c *Context) Driver() driver.Driver { return c.drv }

// Bindings returns a copy of the current binding mirror.
func (c *Context) Bindings() Bindings {
	b := c.bindings
	b.Textures = maps.Clone(c.bindings.Textures)
	return b
}

// ClearErrors drains and discards the driver error queue.
func (c *Context) ClearErrors() {
	for range maxErrorDrain {
		code := c.drv.GetError()
		if code == driver.NoError {
			return
		}
		Logger().Debug("discarding stale GL error", "code", driver.ErrorString(code))
	}
}

// Check drains the driver error queue and reports any codes found as a
// *GLError attributed to call. It returns nil when the queue was empty.
func (c *Context) Check(call string) error {
	return c.check(call, 2)
}

func (c *Context) check(call string, skip int) error {
	var codes []uint32
	for range maxErrorDrain {
		code := c.drv.GetError()
		if code == driver.NoError {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}

	_, file, line, _ := runtime.Caller(skip)
	err := &GLError{Codes: codes, Call: call, File: file, Line: line}
	Logger().Error("OpenGL error", "call", call, "err", err)
	if c.opts.onError != nil {
		c.opts.onError(err)
	}
	return err
}

// call clears stale errors, runs fn and checks the queue. The reported
// call site is the caller of call.
func (c *Context) call(name string, fn func()) error {
	c.ClearErrors()
	fn()
	return c.check(name, 2)
}

// bindBuffer binds id to target and updates the mirror. An element buffer
// binding is captured by the current vertex array.
func (c *Context) bindBuffer(target, id uint32) error {
	if c.opts.elideBinds && c.boundBuffer(target) == id {
		return nil
	}
	if err := c.call("BindBuffer", func() { c.drv.BindBuffer(target, id) }); err != nil {
		return err
	}
	switch target {
	case driver.ArrayBuffer:
		c.bindings.ArrayBuffer = id
	case driver.ElementArrayBuffer:
		c.bindings.ElementArrayBuffer = id
		c.elements[c.bindings.VertexArray] = id
	}
	return nil
}

func (c *Context) boundBuffer(target uint32) uint32 {
	switch target {
	case driver.ArrayBuffer:
		return c.bindings.ArrayBuffer
	case driver.ElementArrayBuffer:
		return c.bindings.ElementArrayBuffer
	default:
		return 0
	}
}

// bindVertexArray binds id. Binding a vertex array restores the element
// buffer it captured.
func (c *Context) bindVertexArray(id uint32) error {
	if c.opts.elideBinds && c.bindings.VertexArray == id {
		return nil
	}
	if err := c.call("BindVertexArray", func() { c.drv.BindVertexArray(id) }); err != nil {
		return err
	}
	c.bindings.VertexArray = id
	c.bindings.ElementArrayBuffer = c.elements[id]
	return nil
}

func (c *Context) useProgram(id uint32) error {
	if c.opts.elideBinds && c.bindings.Program == id {
		return nil
	}
	if err := c.call("UseProgram", func() { c.drv.UseProgram(id) }); err != nil {
		return err
	}
	c.bindings.Program = id
	return nil
}

// bindTexture activates unit (0-based) and binds id to it.
func (c *Context) bindTexture(unit, id uint32) error {
	if c.opts.elideBinds && c.bindings.ActiveTextureUnit == unit && c.bindings.Textures[unit] == id {
		return nil
	}
	if err := c.call("ActiveTexture", func() { c.drv.ActiveTexture(driver.Texture0 + unit) }); err != nil {
		return err
	}
	c.bindings.ActiveTextureUnit = unit
	if err := c.call("BindTexture", func() { c.drv.BindTexture(driver.Texture2D, id) }); err != nil {
		return err
	}
	if id == 0 {
		delete(c.bindings.Textures, unit)
	} else {
		c.bindings.Textures[unit] = id
	}
	return nil
}

// forgetBuffer clears mirror entries for a deleted buffer, including the
// element buffer captured by any vertex array.
func (c *Context) forgetBuffer(id uint32) {
	if c.bindings.ArrayBuffer == id {
		c.bindings.ArrayBuffer = 0
	}
	if c.bindings.ElementArrayBuffer == id {
		c.bindings.ElementArrayBuffer = 0
	}
	for vao, bound := range c.elements {
		if bound == id {
			c.elements[vao] = 0
		}
	}
}

// forgetVertexArray clears mirror entries for a deleted vertex array.
func (c *Context) forgetVertexArray(id uint32) {
	delete(c.elements, id)
	if c.bindings.VertexArray == id {
		c.bindings.VertexArray = 0
		c.bindings.ElementArrayBuffer = c.elements[0]
	}
}

func (c *Context) forgetProgram(id uint32) {
	if c.bindings.Program == id {
		c.bindings.Program = 0
	}
}

func (c *Context) forgetTexture(id uint32) {
	for unit, bound := range c.bindings.Textures {
		if bound == id {
			delete(c.bindings.Textures, unit)
		}
	}
}
