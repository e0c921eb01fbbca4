package software

import (
	"maps"
	"slices"

	"github.com/gogpu/glrender/driver"
)

type bufferObject struct {
	data  []byte
	usage uint32
}

// AttribState is the recorded state of one vertex attribute.
type AttribState struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// VertexArrayState is a snapshot of a vertex array object.
type VertexArrayState struct {
	ElementBuffer uint32
	Attribs       map[uint32]AttribState
}

type vertexArrayObject struct {
	elementBuffer uint32
	attribs       map[uint32]AttribState
}

func newVertexArrayObject() *vertexArrayObject {
	return &vertexArrayObject{attribs: make(map[uint32]AttribState)}
}

func (d *Driver) GenBuffer() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.genName()
	d.buffers[id] = &bufferObject{}
	return id
}

func (d *Driver) DeleteBuffer(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.buffers[id]; !ok {
		return
	}
	delete(d.buffers, id)
	// Deleting a bound buffer reverts the binding to zero. Element buffer
	// attachments are dropped from every vertex array so names stay unambiguous.
	if d.arrayBuffer == id {
		d.arrayBuffer = 0
	}
	for _, vao := range d.vertexArrays {
		if vao.elementBuffer == id {
			vao.elementBuffer = 0
		}
	}
}

func (d *Driver) BindBuffer(target, id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id != 0 {
		if _, ok := d.buffers[id]; !ok {
			d.fail(driver.InvalidOperation)
			return
		}
	}
	switch target {
	case driver.ArrayBuffer:
		d.arrayBuffer = id
	case driver.ElementArrayBuffer:
		d.vertexArrays[d.vertexArray].elementBuffer = id
	default:
		d.fail(driver.InvalidEnum)
	}
}

func (d *Driver) BufferData(target uint32, data []byte, usage uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.boundBuffer(target)
	if !ok {
		d.fail(driver.InvalidEnum)
		return
	}
	if id == 0 {
		d.fail(driver.InvalidOperation)
		return
	}
	buf := d.buffers[id]
	buf.data = slices.Clone(data)
	buf.usage = usage
}

// boundBuffer returns the buffer bound to target. Caller holds d.mu.
func (d *Driver) boundBuffer(target uint32) (uint32, bool) {
	switch target {
	case driver.ArrayBuffer:
		return d.arrayBuffer, true
	case driver.ElementArrayBuffer:
		return d.vertexArrays[d.vertexArray].elementBuffer, true
	default:
		return 0, false
	}
}

func (d *Driver) GenVertexArray() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.genName()
	d.vertexArrays[id] = newVertexArrayObject()
	return id
}

func (d *Driver) DeleteVertexArray(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == 0 {
		return
	}
	if _, ok := d.vertexArrays[id]; !ok {
		return
	}
	delete(d.vertexArrays, id)
	if d.vertexArray == id {
		d.vertexArray = 0
	}
}

func (d *Driver) BindVertexArray(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.vertexArrays[id]; !ok {
		d.fail(driver.InvalidOperation)
		return
	}
	d.vertexArray = id
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index >= driver.MaxVertexAttribs {
		d.fail(driver.InvalidValue)
		return
	}
	if d.vertexArray == 0 {
		d.fail(driver.InvalidOperation)
		return
	}
	vao := d.vertexArrays[d.vertexArray]
	a := vao.attribs[index]
	a.Enabled = true
	vao.attribs[index] = a
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index >= driver.MaxVertexAttribs || size < 1 || size > 4 || stride < 0 {
		d.fail(driver.InvalidValue)
		return
	}
	switch xtype {
	case driver.Byte, driver.UnsignedByte, driver.UnsignedShort, driver.Int, driver.UnsignedInt, driver.Float:
	default:
		d.fail(driver.InvalidEnum)
		return
	}
	if d.vertexArray == 0 || (d.arrayBuffer == 0 && offset != 0) {
		d.fail(driver.InvalidOperation)
		return
	}
	vao := d.vertexArrays[d.vertexArray]
	a := vao.attribs[index]
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.arrayBuffer
	vao.attribs[index] = a
}

// BoundBuffer returns the buffer bound to target. The element array binding
// is the one stored in the current vertex array.
func (d *Driver) BoundBuffer(target uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, _ := d.boundBuffer(target)
	return id
}

// BufferContents returns a copy of a buffer's data store.
func (d *Driver) BufferContents(id uint32) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(buf.data), true
}

// BoundVertexArray returns the current vertex array name.
func (d *Driver) BoundVertexArray() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vertexArray
}

// VertexArray returns a snapshot of the named vertex array.
func (d *Driver) VertexArray(id uint32) (VertexArrayState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	vao, ok := d.vertexArrays[id]
	if !ok {
		return VertexArrayState{}, false
	}
	return VertexArrayState{ElementBuffer: vao.elementBuffer, Attribs: maps.Clone(vao.attribs)}, true
}
