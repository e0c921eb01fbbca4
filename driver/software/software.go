// Package software implements driver.Driver as an in-memory model of an
// OpenGL 4.1 core context.
//
// The model keeps the object tables (buffers, vertex arrays, shaders,
// programs, textures), the global bind state, per-vertex-array attribute and
// element-buffer records, per-program uniform storage and the error queue.
// Draw calls are recorded rather than rasterized. It is used for headless
// runs and to test the wrappers without a display.
//
// Importing this package registers the "software" driver:
//
//	import _ "github.com/gogpu/glrender/driver/software"
package software

import (
	"sync"

	"github.com/gogpu/glrender/driver"
)

func init() {
	driver.Register(driver.NameSoftware, func() driver.Driver {
		return New()
	})
}

// Version is reported by Driver.Version.
const Version = "4.1 glrender software"

// Driver is the in-memory GL model. All methods are safe for concurrent use,
// though the wrappers only ever call them from one goroutine.
type Driver struct {
	mu sync.Mutex

	initialized bool
	nextID      uint32
	errs        []uint32

	enabled    map[uint32]bool
	blendSrc   uint32
	blendDst   uint32
	clearColor [4]float32
	clears     int
	viewport   [4]int32

	buffers      map[uint32]*bufferObject
	arrayBuffer  uint32
	vertexArrays map[uint32]*vertexArrayObject
	vertexArray  uint32

	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	program  uint32

	textures   map[uint32]*textureObject
	activeUnit uint32
	units      map[uint32]uint32

	draws []DrawCall
}

// New creates an uninitialized software driver.
func New() *Driver {
	d := &Driver{
		enabled:      make(map[uint32]bool),
		buffers:      make(map[uint32]*bufferObject),
		vertexArrays: make(map[uint32]*vertexArrayObject),
		shaders:      make(map[uint32]*shaderObject),
		programs:     make(map[uint32]*programObject),
		textures:     make(map[uint32]*textureObject),
		units:        make(map[uint32]uint32),
	}
	// Name 0 is the default vertex array; it only carries element buffer state.
	d.vertexArrays[0] = newVertexArrayObject()
	return d
}

// Name returns the driver identifier.
func (d *Driver) Name() string { return driver.NameSoftware }

// Init marks the driver ready. It never fails.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = true
	return nil
}

// Version returns the model's version string.
func (d *Driver) Version() string { return Version }

// GetError pops the oldest queued error code.
func (d *Driver) GetError() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.errs) == 0 {
		return driver.NoError
	}
	code := d.errs[0]
	d.errs = d.errs[1:]
	return code
}

// InjectError queues an error code as if the last call had failed.
func (d *Driver) InjectError(code uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, code)
}

// fail queues code. Caller holds d.mu.
func (d *Driver) fail(code uint32) {
	d.errs = append(d.errs, code)
}

// genName returns a fresh object name. Caller holds d.mu.
func (d *Driver) genName() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Driver) Enable(capability uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled[capability] = true
}

func (d *Driver) Disable(capability uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.enabled, capability)
}

func (d *Driver) BlendFunc(sfactor, dfactor uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blendSrc, d.blendDst = sfactor, dfactor
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mask&^(driver.ColorBufferBit|driver.DepthBufferBit) != 0 {
		d.fail(driver.InvalidValue)
		return
	}
	d.clears++
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if width < 0 || height < 0 {
		d.fail(driver.InvalidValue)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

var _ driver.Driver = (*Driver)(nil)
