// Package opengl implements driver.Driver on top of go-gl's OpenGL 4.1 core
// profile bindings.
//
// Importing this package registers the "opengl" driver:
//
//	import _ "github.com/gogpu/glrender/driver/opengl"
//
// The driver requires cgo and a GL context made current on the calling OS
// thread before Init. All calls must come from that thread.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glrender/driver"
)

func init() {
	driver.Register(driver.NameOpenGL, func() driver.Driver {
		return &Driver{}
	})
}

// Driver issues calls against the current OpenGL context.
type Driver struct {
	initialized bool
}

// New creates an uninitialized OpenGL driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the driver identifier.
func (d *Driver) Name() string { return driver.NameOpenGL }

// Init loads the GL function pointers for the current context.
func (d *Driver) Init() error {
	if d.initialized {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}
	d.initialized = true
	return nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Driver) Version() string {
	if !d.initialized {
		return ""
	}
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Driver) GetError() uint32 { return gl.GetError() }

func (d *Driver) Enable(capability uint32)          { gl.Enable(capability) }
func (d *Driver) Disable(capability uint32)         { gl.Disable(capability) }
func (d *Driver) BlendFunc(sfactor, dfactor uint32) { gl.BlendFunc(sfactor, dfactor) }
func (d *Driver) ClearColor(r, g, b, a float32)     { gl.ClearColor(r, g, b, a) }
func (d *Driver) Clear(mask uint32)                 { gl.Clear(mask) }

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Driver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Driver) DeleteBuffer(id uint32)       { gl.DeleteBuffers(1, &id) }
func (d *Driver) BindBuffer(target, id uint32) { gl.BindBuffer(target, id) }

func (d *Driver) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (d *Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) DeleteVertexArray(id uint32)          { gl.DeleteVertexArrays(1, &id) }
func (d *Driver) BindVertexArray(id uint32)            { gl.BindVertexArray(id) }
func (d *Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (d *Driver) CreateShader(stage uint32) uint32 { return gl.CreateShader(stage) }

func (d *Driver) ShaderSource(id uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
}

func (d *Driver) CompileShader(id uint32) { gl.CompileShader(id) }

func (d *Driver) GetShaderiv(id, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(id, pname, &v)
	return v
}

func (d *Driver) GetShaderInfoLog(id uint32) string {
	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(id, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(id uint32) { gl.DeleteShader(id) }

func (d *Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (d *Driver) ValidateProgram(program uint32)      { gl.ValidateProgram(program) }

func (d *Driver) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Driver) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) Uniform1i(location int32, v int32)   { gl.Uniform1i(location, v) }
func (d *Driver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Driver) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (d *Driver) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (d *Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Driver) DeleteTexture(id uint32)       { gl.DeleteTextures(1, &id) }
func (d *Driver) ActiveTexture(unit uint32)     { gl.ActiveTexture(unit) }
func (d *Driver) BindTexture(target, id uint32) { gl.BindTexture(target, id) }

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, nil)
		return
	}
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(pixels))
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

var _ driver.Driver = (*Driver)(nil)
