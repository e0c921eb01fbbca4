package glrender

import (
	"fmt"

	"github.com/gogpu/glrender/driver"
)

// Renderer clears the framebuffer and issues indexed draws. It keeps no
// state of its own; everything it needs is passed to each call.
type Renderer struct {
	ctx *Context
}

// NewRenderer returns a renderer drawing through ctx.
func NewRenderer(ctx *Context) *Renderer {
	return &Renderer{ctx: ctx}
}

// Clear clears the color buffer.
func (r *Renderer) Clear() error {
	return r.ctx.call("Clear", func() { r.ctx.drv.Clear(driver.ColorBufferBit) })
}

// SetClearColor sets the color Clear fills with.
func (r *Renderer) SetClearColor(red, green, blue, alpha float32) error {
	return r.ctx.call("ClearColor", func() { r.ctx.drv.ClearColor(red, green, blue, alpha) })
}

// EnableBlending turns on standard alpha blending.
func (r *Renderer) EnableBlending() error {
	return r.ctx.call("BlendFunc", func() {
		r.ctx.drv.Enable(driver.Blend)
		r.ctx.drv.BlendFunc(driver.SrcAlpha, driver.OneMinusSrcAlpha)
	})
}

// Viewport maps normalized device coordinates onto a width x height
// framebuffer.
func (r *Renderer) Viewport(width, height int) error {
	return r.ctx.call("Viewport", func() { r.ctx.drv.Viewport(0, 0, int32(width), int32(height)) })
}

// Draw binds shader and va, then draws count indices from va's index
// buffer as a triangle list.
func (r *Renderer) Draw(va *VertexArray, shader *Shader, count int) error {
	if count < 0 {
		return fmt.Errorf("glrender: negative index count %d", count)
	}
	if err := shader.Bind(); err != nil {
		return err
	}
	// The vertex array brings its index buffer binding with it.
	if err := va.Bind(); err != nil {
		return err
	}
	return r.ctx.call("DrawElements", func() {
		r.ctx.drv.DrawElements(driver.Triangles, int32(count), driver.UnsignedInt, 0)
	})
}
