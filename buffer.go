package glrender

import (
	"unsafe"

	"github.com/gogpu/glrender/driver"
)

// VertexBuffer owns one GPU buffer of static vertex data.
//
// The data is uploaded once at creation. Delete releases the buffer; any
// later call returns ErrDeleted.
type VertexBuffer struct {
	ctx  *Context
	id   uint32
	size int
}

// NewVertexBuffer uploads data as an immutable vertex buffer.
func NewVertexBuffer[T Scalar](ctx *Context, data []T) (*VertexBuffer, error) {
	return NewVertexBufferBytes(ctx, asBytes(data))
}

// NewVertexBufferBytes uploads raw interleaved vertex data.
func NewVertexBufferBytes(ctx *Context, data []byte) (*VertexBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	id, err := createBuffer(ctx, driver.ArrayBuffer, data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("vertex buffer created", "id", id, "bytes", len(data))
	return &VertexBuffer{ctx: ctx, id: id, size: len(data)}, nil
}

// ID returns the driver handle, 0 after Delete.
func (vb *VertexBuffer) ID() uint32 { return vb.id }

// Size returns the buffer size in bytes.
func (vb *VertexBuffer) Size() int { return vb.size }

// Bind makes this the active array buffer.
func (vb *VertexBuffer) Bind() error {
	if vb.id == 0 {
		return ErrDeleted
	}
	return vb.ctx.bindBuffer(driver.ArrayBuffer, vb.id)
}

// Unbind clears the active array buffer.
func (vb *VertexBuffer) Unbind() error {
	return vb.ctx.bindBuffer(driver.ArrayBuffer, 0)
}

// Delete releases the GPU buffer. Calling Delete again is a no-op.
func (vb *VertexBuffer) Delete() error {
	if vb.id == 0 {
		return nil
	}
	id := vb.id
	vb.id = 0
	vb.ctx.forgetBuffer(id)
	Logger().Debug("vertex buffer deleted", "id", id)
	return vb.ctx.call("DeleteBuffer", func() { vb.ctx.drv.DeleteBuffer(id) })
}

// IndexBuffer owns one GPU buffer of 32-bit unsigned indices.
type IndexBuffer struct {
	ctx   *Context
	id    uint32
	count int
}

// NewIndexBuffer uploads indices as an immutable element buffer.
//
// The element array binding is part of vertex array state, so the upload
// first unbinds any bound vertex array to leave its index buffer untouched.
// Attach the buffer with VertexArray.AddBuffer.
func NewIndexBuffer(ctx *Context, indices []uint32) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyBuffer
	}
	if ctx.bindings.VertexArray != 0 {
		if err := ctx.bindVertexArray(0); err != nil {
			return nil, err
		}
	}
	id, err := createBuffer(ctx, driver.ElementArrayBuffer, asBytes(indices))
	if err != nil {
		return nil, err
	}
	Logger().Debug("index buffer created", "id", id, "count", len(indices))
	return &IndexBuffer{ctx: ctx, id: id, count: len(indices)}, nil
}

// ID returns the driver handle, 0 after Delete.
func (ib *IndexBuffer) ID() uint32 { return ib.id }

// Count returns the number of indices.
func (ib *IndexBuffer) Count() int { return ib.count }

// Bind makes this the active element buffer.
func (ib *IndexBuffer) Bind() error {
	if ib.id == 0 {
		return ErrDeleted
	}
	return ib.ctx.bindBuffer(driver.ElementArrayBuffer, ib.id)
}

// Unbind clears the active element buffer.
func (ib *IndexBuffer) Unbind() error {
	return ib.ctx.bindBuffer(driver.ElementArrayBuffer, 0)
}

// Delete releases the GPU buffer. Calling Delete again is a no-op.
func (ib *IndexBuffer) Delete() error {
	if ib.id == 0 {
		return nil
	}
	id := ib.id
	ib.id = 0
	ib.ctx.forgetBuffer(id)
	Logger().Debug("index buffer deleted", "id", id)
	return ib.ctx.call("DeleteBuffer", func() { ib.ctx.drv.DeleteBuffer(id) })
}

// createBuffer generates a buffer, binds it to target and uploads data.
// The buffer is released again if any step fails.
func createBuffer(ctx *Context, target uint32, data []byte) (uint32, error) {
	var id uint32
	if err := ctx.call("GenBuffer", func() { id = ctx.drv.GenBuffer() }); err != nil {
		return 0, err
	}
	if err := ctx.bindBuffer(target, id); err != nil {
		ctx.drv.DeleteBuffer(id)
		ctx.forgetBuffer(id)
		return 0, err
	}
	err := ctx.call("BufferData", func() { ctx.drv.BufferData(target, data, driver.StaticDraw) })
	if err != nil {
		ctx.drv.DeleteBuffer(id)
		ctx.forgetBuffer(id)
		return 0, err
	}
	return id, nil
}

// asBytes reinterprets a scalar slice as its native byte representation.
func asBytes[T Scalar](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}
