package glrender

import "fmt"

// VertexArray records how a vertex buffer, an index buffer and a layout fit
// together. It does not own the buffers.
type VertexArray struct {
	ctx      *Context
	id       uint32
	hasSetup bool
	ib       *IndexBuffer
}

// NewVertexArray creates an empty vertex array object.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	var id uint32
	if err := ctx.call("GenVertexArray", func() { id = ctx.drv.GenVertexArray() }); err != nil {
		return nil, err
	}
	Logger().Debug("vertex array created", "id", id)
	return &VertexArray{ctx: ctx, id: id}, nil
}

// ID returns the driver handle, 0 after Delete.
func (va *VertexArray) ID() uint32 { return va.id }

// IndexBuffer returns the index buffer given to AddBuffer, if any.
func (va *VertexArray) IndexBuffer() *IndexBuffer { return va.ib }

// AddBuffer binds the array, vb and ib, then registers one attribute per
// layout element: attribute i reads Count components of Type at the running
// byte offset, with the layout's stride. ib may be nil.
//
// AddBuffer is a one-time setup; a second call returns ErrLayoutAlreadySet.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, ib *IndexBuffer, layout *VertexBufferLayout) error {
	if va.id == 0 {
		return ErrDeleted
	}
	if va.hasSetup {
		return ErrLayoutAlreadySet
	}
	if err := va.Bind(); err != nil {
		return err
	}
	if err := vb.Bind(); err != nil {
		return fmt.Errorf("glrender: bind vertex buffer: %w", err)
	}
	if ib != nil {
		if err := ib.Bind(); err != nil {
			return fmt.Errorf("glrender: bind index buffer: %w", err)
		}
	}

	ctx := va.ctx
	stride := int32(layout.Stride())
	offset := 0
	for i, e := range layout.elements {
		index := uint32(i)
		if err := ctx.call("EnableVertexAttribArray", func() { ctx.drv.EnableVertexAttribArray(index) }); err != nil {
			return err
		}
		err := ctx.call("VertexAttribPointer", func() {
			ctx.drv.VertexAttribPointer(index, int32(e.Count), e.Type, e.Normalized, stride, offset)
		})
		if err != nil {
			return err
		}
		offset += e.Size()
	}

	va.hasSetup = true
	va.ib = ib
	return nil
}

// Bind makes this the active vertex array, which also restores its index
// buffer binding.
func (va *VertexArray) Bind() error {
	if va.id == 0 {
		return ErrDeleted
	}
	return va.ctx.bindVertexArray(va.id)
}

// Unbind clears the active vertex array.
func (va *VertexArray) Unbind() error {
	return va.ctx.bindVertexArray(0)
}

// Delete releases the vertex array. The buffers it referenced are not
// affected. Calling Delete again is a no-op.
func (va *VertexArray) Delete() error {
	if va.id == 0 {
		return nil
	}
	id := va.id
	va.id = 0
	va.ib = nil
	va.ctx.forgetVertexArray(id)
	Logger().Debug("vertex array deleted", "id", id)
	return va.ctx.call("DeleteVertexArray", func() { va.ctx.drv.DeleteVertexArray(id) })
}
