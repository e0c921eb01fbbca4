package glrender

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/glrender/driver"
)

// Wrapper errors.
var (
	// ErrNilDriver is returned when a Context is created without a driver.
	ErrNilDriver = errors.New("glrender: nil driver")

	// ErrDeleted is returned when operating on an object after Delete.
	ErrDeleted = errors.New("glrender: object has been deleted")

	// ErrUniformNotFound is returned by uniform setters when the name does
	// not resolve to an active uniform of the program.
	ErrUniformNotFound = errors.New("glrender: uniform not found")

	// ErrLayoutAlreadySet is returned when AddBuffer is called twice on the
	// same vertex array.
	ErrLayoutAlreadySet = errors.New("glrender: vertex array layout already set")

	// ErrEmptyBuffer is returned when a buffer is created from no data.
	ErrEmptyBuffer = errors.New("glrender: empty buffer data")

	// ErrInvalidTextureSlot is returned when binding beyond the last texture unit.
	ErrInvalidTextureSlot = errors.New("glrender: invalid texture slot")

	// ErrInvalidDimensions is returned for images with no pixels.
	ErrInvalidDimensions = errors.New("glrender: invalid dimensions")
)

// GLError is reported when the driver error queue was non-empty after a call.
type GLError struct {
	// Codes holds every code drained from the queue, oldest first.
	Codes []uint32

	// Call names the driver call that was checked.
	Call string

	// File and Line locate the wrapper code that issued the call.
	File string
	Line int
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = driver.ErrorString(c)
	}
	return fmt.Sprintf("glrender: [OpenGL Error] (%s): %s %s:%d", strings.Join(names, ", "), e.Call, e.File, e.Line)
}

// Has reports whether code was among the drained codes.
func (e *GLError) Has(code uint32) bool {
	return slices.Contains(e.Codes, code)
}

// CompileError carries the compiler diagnostic of a failed shader stage.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glrender: failed to compile %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError carries the linker diagnostic of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glrender: failed to link program: %s", strings.TrimSpace(e.Log))
}
