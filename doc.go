// Package glrender provides small owning wrappers over an OpenGL context for
// drawing indexed 2D geometry.
//
// # Overview
//
// Each wrapper owns exactly one driver object and releases it in Delete:
//
//   - VertexBuffer, IndexBuffer: static GPU buffers
//   - VertexBufferLayout: attribute descriptions and stride (no GPU state)
//   - VertexArray: ties a vertex buffer, index buffer and layout together
//   - Shader: linked program with a uniform location cache
//   - Texture: 2D RGBA8 texture decoded from an image file
//   - Renderer: clear and indexed draw
//
// All wrappers borrow a Context, which owns the driver, mirrors the global
// bind state and checks the driver error queue after every call.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/glrender"
//		"github.com/gogpu/glrender/driver"
//		_ "github.com/gogpu/glrender/driver/opengl"
//	)
//
//	d, err := driver.Open(driver.NameOpenGL) // with a GL context current
//	ctx, err := glrender.NewContext(d)
//
//	vb, err := glrender.NewVertexBuffer(ctx, positions)
//	ib, err := glrender.NewIndexBuffer(ctx, indices)
//	layout := glrender.NewVertexBufferLayout()
//	glrender.Push[float32](layout, 2)
//	va, err := glrender.NewVertexArray(ctx)
//	err = va.AddBuffer(vb, ib, layout)
//
//	shader, err := glrender.NewShaderFromFile(ctx, "res/shaders/Basic.shader")
//	err = shader.SetUniform4f("u_Color", 0.2, 0.3, 0.8, 1.0)
//
//	r := glrender.NewRenderer(ctx)
//	err = r.Clear()
//	err = r.Draw(va, shader, ib.Count())
//
// # Errors
//
// Driver errors surface as *GLError values naming the call and the code
// location that issued it. Shader build failures are *CompileError or
// *LinkError. Nothing in this package panics or exits the process; the
// caller decides which errors are fatal.
//
// # Threading
//
// A Context and everything created from it must be used from the thread
// that owns the GL context.
package glrender

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
