// Package driver provides the pluggable graphics driver abstraction.
//
// A Driver is the fixed OpenGL call surface used by the glrender wrappers:
// buffer, vertex array, shader, program and texture objects, state binds and
// indexed draws. Enum values are the OpenGL ones, so an implementation backed
// by a real GL context can pass them through unchanged.
//
// # Driver Registration
//
// Drivers are registered via init() functions and selected at runtime:
//
//	import _ "github.com/gogpu/glrender/driver/opengl"   // go-gl, needs cgo and a current context
//	import _ "github.com/gogpu/glrender/driver/software" // in-memory, always available
//
// # Driver Selection
//
// Use Default() to get the best available driver, or Get() to request
// a specific driver by name:
//
//	d := driver.Default()
//	if err := d.Init(); err != nil {
//		log.Fatal(err)
//	}
//
//	d := driver.Get("software")
//
// # Available Drivers
//
// - "opengl": OpenGL 4.1 core profile via go-gl
// - "software": in-memory model of the GL object tables and bind state
package driver
