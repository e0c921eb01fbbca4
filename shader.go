package glrender

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glrender/driver"
)

// Shader owns one linked program and caches its uniform locations.
//
// Uniform setters make the program current before updating it, so a value
// always lands in this program regardless of what was bound before.
type Shader struct {
	ctx       *Context
	id        uint32
	path      string
	locations map[string]int32
}

// NewShader compiles and links src into a program.
//
// A stage that fails to compile yields a *CompileError, a failed link a
// *LinkError; the diagnostic is also logged. No driver objects are left
// behind on failure.
func NewShader(ctx *Context, src ShaderProgramSource) (*Shader, error) {
	id, err := createProgram(ctx, src)
	if err != nil {
		return nil, err
	}
	Logger().Debug("shader program created", "id", id)
	return &Shader{ctx: ctx, id: id, locations: make(map[string]int32)}, nil
}

// NewShaderFromFile loads the shader file at path (see ParseShader) and
// builds a program from it.
func NewShaderFromFile(ctx *Context, path string) (*Shader, error) {
	src, err := LoadShaderFile(path)
	if err != nil {
		return nil, err
	}
	s, err := NewShader(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	s.path = path
	return s, nil
}

// ID returns the program handle, 0 after Delete.
func (s *Shader) ID() uint32 { return s.id }

// Path returns the file the shader was loaded from, if any.
func (s *Shader) Path() string { return s.path }

// Bind makes this the active program.
func (s *Shader) Bind() error {
	if s.id == 0 {
		return ErrDeleted
	}
	return s.ctx.useProgram(s.id)
}

// Unbind clears the active program.
func (s *Shader) Unbind() error {
	return s.ctx.useProgram(0)
}

// Reload rebuilds the program from src. On failure the current program is
// kept and the error returned. On success the old program is deleted and
// the uniform cache is reset; uniform values must be set again.
func (s *Shader) Reload(src ShaderProgramSource) error {
	if s.id == 0 {
		return ErrDeleted
	}
	id, err := createProgram(s.ctx, src)
	if err != nil {
		return err
	}
	old := s.id
	wasBound := s.ctx.bindings.Program == old
	s.id = id
	s.locations = make(map[string]int32)
	s.ctx.forgetProgram(old)
	if err := s.ctx.call("DeleteProgram", func() { s.ctx.drv.DeleteProgram(old) }); err != nil {
		return err
	}
	Logger().Info("shader program reloaded", "old", old, "new", id, "path", s.path)
	if wasBound {
		return s.Bind()
	}
	return nil
}

// ReloadFromFile re-reads the shader's file and calls Reload.
func (s *Shader) ReloadFromFile() error {
	if s.path == "" {
		return fmt.Errorf("glrender: shader %d was not loaded from a file", s.id)
	}
	src, err := LoadShaderFile(s.path)
	if err != nil {
		return err
	}
	return s.Reload(src)
}

// UniformLocation resolves name, caching the result. A name that is not an
// active uniform resolves to -1 and an error wrapping ErrUniformNotFound;
// the miss is cached and logged once.
func (s *Shader) UniformLocation(name string) (int32, error) {
	if s.id == 0 {
		return driver.InvalidLocation, ErrDeleted
	}
	if loc, ok := s.locations[name]; ok {
		return loc, notFound(loc, name)
	}

	var loc int32
	if err := s.ctx.call("GetUniformLocation", func() { loc = s.ctx.drv.GetUniformLocation(s.id, name) }); err != nil {
		return driver.InvalidLocation, err
	}
	if loc == driver.InvalidLocation {
		Logger().Warn("uniform doesn't exist", "name", name, "program", s.id)
	}
	s.locations[name] = loc
	return loc, notFound(loc, name)
}

func notFound(loc int32, name string) error {
	if loc != driver.InvalidLocation {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUniformNotFound, name)
}

// setUniform resolves name, makes the program current and runs set.
func (s *Shader) setUniform(name, call string, set func(loc int32)) error {
	loc, err := s.UniformLocation(name)
	if err != nil {
		return err
	}
	if err := s.Bind(); err != nil {
		return err
	}
	return s.ctx.call(call, func() { set(loc) })
}

// SetUniform1i sets an int or sampler uniform.
func (s *Shader) SetUniform1i(name string, v int32) error {
	return s.setUniform(name, "Uniform1i", func(loc int32) {
		s.ctx.drv.Uniform1i(loc, v)
	})
}

// SetUniform1f sets a float uniform.
func (s *Shader) SetUniform1f(name string, v float32) error {
	return s.setUniform(name, "Uniform1f", func(loc int32) {
		s.ctx.drv.Uniform1f(loc, v)
	})
}

// SetUniform2f sets a vec2 uniform.
func (s *Shader) SetUniform2f(name string, v0, v1 float32) error {
	return s.setUniform(name, "Uniform2f", func(loc int32) {
		s.ctx.drv.Uniform2f(loc, v0, v1)
	})
}

// SetUniform3f sets a vec3 uniform.
func (s *Shader) SetUniform3f(name string, v0, v1, v2 float32) error {
	return s.setUniform(name, "Uniform3f", func(loc int32) {
		s.ctx.drv.Uniform3f(loc, v0, v1, v2)
	})
}

// SetUniform4f sets a vec4 uniform.
func (s *Shader) SetUniform4f(name string, v0, v1, v2, v3 float32) error {
	return s.setUniform(name, "Uniform4f", func(loc int32) {
		s.ctx.drv.Uniform4f(loc, v0, v1, v2, v3)
	})
}

// SetUniformMat4f sets a mat4 uniform. mgl32 matrices are column-major,
// which is what GL expects, so no transpose is requested.
func (s *Shader) SetUniformMat4f(name string, m mgl32.Mat4) error {
	return s.setUniform(name, "UniformMatrix4fv", func(loc int32) {
		s.ctx.drv.UniformMatrix4fv(loc, false, (*[16]float32)(&m))
	})
}

// Delete releases the program. Calling Delete again is a no-op.
func (s *Shader) Delete() error {
	if s.id == 0 {
		return nil
	}
	id := s.id
	s.id = 0
	s.locations = nil
	s.ctx.forgetProgram(id)
	Logger().Debug("shader program deleted", "id", id)
	return s.ctx.call("DeleteProgram", func() { s.ctx.drv.DeleteProgram(id) })
}

// createProgram compiles both stages, links them and deletes the stage
// objects. Everything created is released again on failure.
func createProgram(ctx *Context, src ShaderProgramSource) (uint32, error) {
	vs, err := compileShader(ctx, driver.VertexShader, src.VertexSource)
	if err != nil {
		return 0, err
	}
	defer ctx.drv.DeleteShader(vs)

	fs, err := compileShader(ctx, driver.FragmentShader, src.FragmentSource)
	if err != nil {
		return 0, err
	}
	defer ctx.drv.DeleteShader(fs)

	var program uint32
	if err := ctx.call("CreateProgram", func() { program = ctx.drv.CreateProgram() }); err != nil {
		return 0, err
	}
	err = ctx.call("LinkProgram", func() {
		ctx.drv.AttachShader(program, vs)
		ctx.drv.AttachShader(program, fs)
		ctx.drv.LinkProgram(program)
	})
	if err != nil {
		ctx.drv.DeleteProgram(program)
		return 0, err
	}

	if ctx.drv.GetProgramiv(program, driver.LinkStatus) == driver.False {
		log := ctx.drv.GetProgramInfoLog(program)
		Logger().Error("failed to link shader program", "log", log)
		ctx.drv.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}

	if err := ctx.call("ValidateProgram", func() { ctx.drv.ValidateProgram(program) }); err != nil {
		ctx.drv.DeleteProgram(program)
		return 0, err
	}
	if ctx.drv.GetProgramiv(program, driver.ValidateStatus) == driver.False {
		Logger().Warn("shader program failed validation", "program", program, "log", ctx.drv.GetProgramInfoLog(program))
	}

	return program, nil
}

// compileShader compiles one stage. On failure the compiler log is logged,
// the shader object deleted and a *CompileError returned.
func compileShader(ctx *Context, stage uint32, source string) (uint32, error) {
	var id uint32
	err := ctx.call("CompileShader", func() {
		id = ctx.drv.CreateShader(stage)
		ctx.drv.ShaderSource(id, source)
		ctx.drv.CompileShader(id)
	})
	if err != nil {
		if id != 0 {
			ctx.drv.DeleteShader(id)
		}
		return 0, err
	}

	if ctx.drv.GetShaderiv(id, driver.CompileStatus) == driver.False {
		log := ctx.drv.GetShaderInfoLog(id)
		Logger().Error("failed to compile shader", "stage", driver.StageName(stage), "log", log)
		ctx.drv.DeleteShader(id)
		return 0, &CompileError{Stage: driver.StageName(stage), Log: log}
	}
	return id, nil
}
