package driver

import "errors"

// Common driver errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not registered.
	ErrDriverNotAvailable = errors.New("driver: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("driver: not initialized")
)

// Driver is the graphics call surface the wrappers are built on.
//
// Every method maps onto one OpenGL entry point (or a small fixed group of
// them, like the info log getters). Calls never return errors directly:
// failures are queued and drained with GetError, exactly like GL.
//
// A Driver is bound to the thread that owns the graphics context and must
// not be used concurrently.
type Driver interface {
	// Name returns the driver identifier (e.g., "opengl", "software").
	Name() string

	// Init loads the entry points. It must be called with the context current.
	Init() error

	// Version returns a human-readable driver/context version string.
	Version() string

	// GetError pops one error code from the queue, or NoError when empty.
	GetError() uint32

	Enable(capability uint32)
	Disable(capability uint32)
	BlendFunc(sfactor, dfactor uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, data []byte, usage uint32)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	CreateShader(stage uint32) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	GetShaderiv(id, pname uint32) int32
	GetShaderInfoLog(id uint32) string
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, transpose bool, m *[16]float32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, id uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)

	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}
