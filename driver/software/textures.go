package software

import (
	"maps"
	"slices"

	"github.com/gogpu/glrender/driver"
)

// TextureState is a snapshot of a texture object.
type TextureState struct {
	Width          int32
	Height         int32
	InternalFormat int32
	Pixels         []byte
	Params         map[uint32]int32
}

type textureObject struct {
	width          int32
	height         int32
	internalFormat int32
	pixels         []byte
	params         map[uint32]int32
}

// DrawCall records one DrawElements call and the state it observed.
type DrawCall struct {
	Mode          uint32
	Count         int32
	Type          uint32
	Offset        int
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
	Uniforms      map[string]Value
	Textures      map[uint32]uint32
}

func (d *Driver) GenTexture() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.genName()
	d.textures[id] = &textureObject{params: make(map[uint32]int32)}
	return id
}

func (d *Driver) DeleteTexture(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.textures[id]; !ok {
		return
	}
	delete(d.textures, id)
	for unit, bound := range d.units {
		if bound == id {
			delete(d.units, unit)
		}
	}
}

func (d *Driver) ActiveTexture(unit uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if unit < driver.Texture0 || unit >= driver.Texture0+driver.MaxTextureUnits {
		d.fail(driver.InvalidEnum)
		return
	}
	d.activeUnit = unit - driver.Texture0
}

func (d *Driver) BindTexture(target, id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if target != driver.Texture2D {
		d.fail(driver.InvalidEnum)
		return
	}
	if id == 0 {
		delete(d.units, d.activeUnit)
		return
	}
	if _, ok := d.textures[id]; !ok {
		d.fail(driver.InvalidOperation)
		return
	}
	d.units[d.activeUnit] = id
}

// boundTexture returns the texture on the active unit. Caller holds d.mu.
func (d *Driver) boundTexture(target uint32) (*textureObject, bool) {
	if target != driver.Texture2D {
		d.fail(driver.InvalidEnum)
		return nil, false
	}
	tex, ok := d.textures[d.units[d.activeUnit]]
	if !ok {
		d.fail(driver.InvalidOperation)
		return nil, false
	}
	return tex, true
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex, ok := d.boundTexture(target)
	if !ok {
		return
	}
	switch pname {
	case driver.TextureMinFilter, driver.TextureMagFilter, driver.TextureWrapS, driver.TextureWrapT:
		tex.params[pname] = param
	default:
		d.fail(driver.InvalidEnum)
	}
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if level < 0 || width < 0 || height < 0 {
		d.fail(driver.InvalidValue)
		return
	}
	if format != driver.RGBA || xtype != driver.UnsignedByte {
		d.fail(driver.InvalidEnum)
		return
	}
	if pixels != nil && len(pixels) < int(width)*int(height)*4 {
		d.fail(driver.InvalidOperation)
		return
	}
	tex, ok := d.boundTexture(target)
	if !ok {
		return
	}
	if level > 0 {
		return
	}
	tex.width = width
	tex.height = height
	tex.internalFormat = internalFormat
	tex.pixels = slices.Clone(pixels)
}

// DrawElements records the call. A program and a vertex array with an
// element buffer must be bound.
func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if count < 0 {
		d.fail(driver.InvalidValue)
		return
	}
	if xtype != driver.UnsignedInt && xtype != driver.UnsignedShort && xtype != driver.UnsignedByte {
		d.fail(driver.InvalidEnum)
		return
	}
	p, ok := d.programs[d.program]
	vao := d.vertexArrays[d.vertexArray]
	if !ok || d.vertexArray == 0 || vao.elementBuffer == 0 {
		d.fail(driver.InvalidOperation)
		return
	}
	d.draws = append(d.draws, DrawCall{
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		Offset:        offset,
		Program:       d.program,
		VertexArray:   d.vertexArray,
		ElementBuffer: vao.elementBuffer,
		Uniforms:      uniformSnapshot(p),
		Textures:      maps.Clone(d.units),
	})
}

// Draws returns the recorded draw calls.
func (d *Driver) Draws() []DrawCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.draws)
}

// ResetDraws discards recorded draw calls.
func (d *Driver) ResetDraws() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draws = nil
}

// Texture returns a snapshot of the named texture.
func (d *Driver) Texture(id uint32) (TextureState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex, ok := d.textures[id]
	if !ok {
		return TextureState{}, false
	}
	return TextureState{
		Width:          tex.width,
		Height:         tex.height,
		InternalFormat: tex.internalFormat,
		Pixels:         slices.Clone(tex.pixels),
		Params:         maps.Clone(tex.params),
	}, true
}

// BoundTexture returns the texture bound to unit (0-based).
func (d *Driver) BoundTexture(unit uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.units[unit]
}

// ActiveTextureUnit returns the 0-based active texture unit.
func (d *Driver) ActiveTextureUnit() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeUnit
}

// Enabled reports whether a capability was enabled.
func (d *Driver) Enabled(capability uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[capability]
}

// BlendFactors returns the last BlendFunc arguments.
func (d *Driver) BlendFactors() (src, dst uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blendSrc, d.blendDst
}

// Clears returns how many Clear calls succeeded.
func (d *Driver) Clears() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// ClearColorValue returns the last ClearColor arguments.
func (d *Driver) ClearColorValue() [4]float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearColor
}

// ViewportValue returns the last Viewport arguments.
func (d *Driver) ViewportValue() [4]int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// LiveObjects counts objects that have not been deleted. The default
// vertex array is not counted.
func (d *Driver) LiveObjects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers) + len(d.vertexArrays) - 1 + len(d.shaders) + len(d.programs) + len(d.textures)
}
