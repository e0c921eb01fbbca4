package glrender

import (
	"slices"

	"github.com/gogpu/glrender/driver"
)

// Scalar lists the component types a vertex attribute can be built from.
type Scalar interface {
	float32 | uint32 | uint8
}

// VertexBufferElement describes one vertex attribute.
type VertexBufferElement struct {
	// Count is the number of components (1 to 4).
	Count int

	// Type is the GL scalar type (driver.Float, driver.UnsignedInt,
	// driver.UnsignedByte).
	Type uint32

	// Normalized maps integer components to [0, 1] in the shader.
	Normalized bool
}

// Size returns the byte size of the element.
func (e VertexBufferElement) Size() int {
	return e.Count * SizeOfType(e.Type)
}

// SizeOfType returns the byte size of a GL scalar type, or 0 for types a
// layout cannot hold.
func SizeOfType(t uint32) int {
	switch t {
	case driver.Float:
		return 4
	case driver.UnsignedInt:
		return 4
	case driver.UnsignedByte:
		return 1
	default:
		return 0
	}
}

// VertexBufferLayout is the ordered list of attributes interleaved in a
// vertex buffer. It is plain data and issues no driver calls.
//
// The zero value is an empty layout ready to use.
type VertexBufferLayout struct {
	elements []VertexBufferElement
	stride   int
}

// NewVertexBufferLayout returns an empty layout.
func NewVertexBufferLayout() *VertexBufferLayout {
	return &VertexBufferLayout{}
}

// Push appends an attribute of count components of type T.
// uint8 components are normalized.
//
//	layout := glrender.NewVertexBufferLayout()
//	glrender.Push[float32](layout, 2) // position
//	glrender.Push[float32](layout, 2) // texture coordinate
func Push[T Scalar](l *VertexBufferLayout, count int) {
	var (
		zero       T
		typ        uint32
		normalized bool
	)
	switch any(zero).(type) {
	case float32:
		typ = driver.Float
	case uint32:
		typ = driver.UnsignedInt
	case uint8:
		typ = driver.UnsignedByte
		normalized = true
	}
	l.push(VertexBufferElement{Count: count, Type: typ, Normalized: normalized})
}

// PushFloat appends count float32 components.
func (l *VertexBufferLayout) PushFloat(count int) { Push[float32](l, count) }

// PushUint appends count uint32 components.
func (l *VertexBufferLayout) PushUint(count int) { Push[uint32](l, count) }

// PushByte appends count normalized uint8 components.
func (l *VertexBufferLayout) PushByte(count int) { Push[uint8](l, count) }

func (l *VertexBufferLayout) push(e VertexBufferElement) {
	l.elements = append(l.elements, e)
	l.stride += e.Size()
}

// Elements returns a copy of the attributes in order.
func (l *VertexBufferLayout) Elements() []VertexBufferElement {
	return slices.Clone(l.elements)
}

// Stride returns the byte distance between consecutive vertices.
func (l *VertexBufferLayout) Stride() int {
	return l.stride
}

// Offsets returns the byte offset of each attribute within a vertex.
func (l *VertexBufferLayout) Offsets() []int {
	offsets := make([]int, len(l.elements))
	offset := 0
	for i, e := range l.elements {
		offsets[i] = offset
		offset += e.Size()
	}
	return offsets
}

// Len returns the number of attributes.
func (l *VertexBufferLayout) Len() int {
	return len(l.elements)
}
