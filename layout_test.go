package glrender

import (
	"slices"
	"testing"

	"github.com/gogpu/glrender/driver"
)

func TestSizeOfType(t *testing.T) {
	tests := []struct {
		name string
		typ  uint32
		want int
	}{
		{"float", driver.Float, 4},
		{"unsigned int", driver.UnsignedInt, 4},
		{"unsigned byte", driver.UnsignedByte, 1},
		{"unsupported", driver.UnsignedShort, 0},
		{"unknown", 0xDEAD, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeOfType(tt.typ); got != tt.want {
				t.Errorf("SizeOfType(0x%X) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestVertexBufferLayout(t *testing.T) {
	tests := []struct {
		name        string
		build       func(l *VertexBufferLayout)
		wantStride  int
		wantOffsets []int
		wantTypes   []uint32
	}{
		{
			name:        "empty",
			build:       func(*VertexBufferLayout) {},
			wantStride:  0,
			wantOffsets: []int{},
			wantTypes:   nil,
		},
		{
			name: "position and texcoord",
			build: func(l *VertexBufferLayout) {
				Push[float32](l, 2)
				Push[float32](l, 2)
			},
			wantStride:  16,
			wantOffsets: []int{0, 8},
			wantTypes:   []uint32{driver.Float, driver.Float},
		},
		{
			name: "position and packed color",
			build: func(l *VertexBufferLayout) {
				l.PushFloat(3)
				l.PushByte(4)
			},
			wantStride:  16,
			wantOffsets: []int{0, 12},
			wantTypes:   []uint32{driver.Float, driver.UnsignedByte},
		},
		{
			name: "index attribute",
			build: func(l *VertexBufferLayout) {
				l.PushUint(1)
			},
			wantStride:  4,
			wantOffsets: []int{0},
			wantTypes:   []uint32{driver.UnsignedInt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewVertexBufferLayout()
			tt.build(l)

			if got := l.Stride(); got != tt.wantStride {
				t.Errorf("Stride() = %d, want %d", got, tt.wantStride)
			}
			if got := l.Offsets(); !slices.Equal(got, tt.wantOffsets) {
				t.Errorf("Offsets() = %v, want %v", got, tt.wantOffsets)
			}
			var types []uint32
			for _, e := range l.Elements() {
				types = append(types, e.Type)
			}
			if !slices.Equal(types, tt.wantTypes) {
				t.Errorf("element types = %v, want %v", types, tt.wantTypes)
			}
			if l.Len() != len(tt.wantTypes) {
				t.Errorf("Len() = %d, want %d", l.Len(), len(tt.wantTypes))
			}
		})
	}
}

func TestLayoutNormalization(t *testing.T) {
	l := NewVertexBufferLayout()
	l.PushFloat(2)
	l.PushUint(1)
	l.PushByte(4)

	want := []bool{false, false, true}
	for i, e := range l.Elements() {
		if e.Normalized != want[i] {
			t.Errorf("element %d Normalized = %v, want %v", i, e.Normalized, want[i])
		}
	}
}

func TestLayoutStrideIgnoresOrder(t *testing.T) {
	a := NewVertexBufferLayout()
	a.PushFloat(2)
	a.PushByte(4)
	a.PushUint(1)

	b := NewVertexBufferLayout()
	b.PushUint(1)
	b.PushFloat(2)
	b.PushByte(4)

	if a.Stride() != b.Stride() || a.Stride() != 16 {
		t.Errorf("strides = %d and %d, want 16 for both", a.Stride(), b.Stride())
	}
}

func TestLayoutZeroValue(t *testing.T) {
	var l VertexBufferLayout
	l.PushFloat(3)
	if l.Stride() != 12 {
		t.Errorf("Stride() = %d, want 12", l.Stride())
	}
}

func TestLayoutElementsIsCopy(t *testing.T) {
	l := NewVertexBufferLayout()
	l.PushFloat(2)
	elems := l.Elements()
	elems[0].Count = 4
	if got := l.Elements()[0].Count; got != 2 {
		t.Errorf("layout changed through Elements(): Count = %d", got)
	}
}
