package driver

import "fmt"

// OpenGL enum values used by the wrappers.
const (
	False = 0
	True  = 1

	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	StackOverflow               uint32 = 0x0503
	StackUnderflow              uint32 = 0x0504
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506

	ColorBufferBit uint32 = 0x00004000
	DepthBufferBit uint32 = 0x00000100

	Blend            uint32 = 0x0BE2
	SrcAlpha         uint32 = 0x0302
	OneMinusSrcAlpha uint32 = 0x0303

	Triangles uint32 = 0x0004

	Byte          uint32 = 0x1400
	UnsignedByte  uint32 = 0x1401
	Int           uint32 = 0x1404
	UnsignedInt   uint32 = 0x1405
	Float         uint32 = 0x1406
	UnsignedShort uint32 = 0x1403

	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893
	StaticDraw         uint32 = 0x88E4

	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
	CompileStatus  uint32 = 0x8B81
	LinkStatus     uint32 = 0x8B82
	ValidateStatus uint32 = 0x8B83
	InfoLogLength  uint32 = 0x8B84

	Texture2D          uint32 = 0x0DE1
	Texture0           uint32 = 0x84C0
	TextureMagFilter   uint32 = 0x2800
	TextureMinFilter   uint32 = 0x2801
	TextureWrapS       uint32 = 0x2802
	TextureWrapT       uint32 = 0x2803
	Linear             uint32 = 0x2601
	Nearest            uint32 = 0x2600
	ClampToEdge        uint32 = 0x812F
	Repeat             uint32 = 0x2901
	RGBA               uint32 = 0x1908
	RGBA8              uint32 = 0x8058
	MaxTextureUnits    uint32 = 32
	MaxVertexAttribs   uint32 = 16
	InvalidLocation    int32  = -1
	DefaultTextureUnit uint32 = 0
)

// ErrorString returns the symbolic name of a GL error code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("GL_ERROR(0x%04X)", code)
	}
}

// StageName returns "vertex" or "fragment" for a shader stage enum.
func StageName(stage uint32) string {
	switch stage {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("stage(0x%04X)", stage)
	}
}
