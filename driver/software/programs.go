package software

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/gogpu/glrender/driver"
)

// uniformDecl matches "uniform <type> <name>;" with an optional array suffix.
var uniformDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// mainDecl matches the entry point declaration.
var mainDecl = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void\s*)?\)`)

// Value is the stored value of one uniform.
type Value struct {
	Ints   []int32
	Floats []float32
}

type shaderObject struct {
	stage    uint32
	source   string
	compiled bool
	log      string
	uniforms map[string]string // name -> GLSL type
}

type programObject struct {
	shaders   []uint32
	linked    bool
	validated bool
	log       string
	locations map[string]int32
	names     map[int32]string
	values    map[int32]Value
}

func (d *Driver) CreateShader(stage uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if stage != driver.VertexShader && stage != driver.FragmentShader {
		d.fail(driver.InvalidEnum)
		return 0
	}
	id := d.genName()
	d.shaders[id] = &shaderObject{stage: stage}
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh, ok := d.shaders[id]
	if !ok {
		d.fail(driver.InvalidValue)
		return
	}
	sh.source = source
}

// CompileShader accepts any source that declares main. Declared uniforms
// are collected for the link step.
func (d *Driver) CompileShader(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh, ok := d.shaders[id]
	if !ok {
		d.fail(driver.InvalidValue)
		return
	}
	sh.uniforms = make(map[string]string)
	if !mainDecl.MatchString(sh.source) {
		sh.compiled = false
		sh.log = fmt.Sprintf("0:1(1): error: %s shader has no main function\n", driver.StageName(sh.stage))
		return
	}
	for _, m := range uniformDecl.FindAllStringSubmatch(sh.source, -1) {
		sh.uniforms[m[2]] = m[1]
	}
	sh.compiled = true
	sh.log = ""
}

func (d *Driver) GetShaderiv(id, pname uint32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh, ok := d.shaders[id]
	if !ok {
		d.fail(driver.InvalidValue)
		return 0
	}
	switch pname {
	case driver.CompileStatus:
		return boolParam(sh.compiled)
	case driver.InfoLogLength:
		return logLength(sh.log)
	default:
		d.fail(driver.InvalidEnum)
		return 0
	}
}

func (d *Driver) GetShaderInfoLog(id uint32) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh, ok := d.shaders[id]
	if !ok {
		d.fail(driver.InvalidValue)
		return ""
	}
	return sh.log
}

func (d *Driver) DeleteShader(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.shaders, id)
}

func (d *Driver) CreateProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.genName()
	d.programs[id] = &programObject{
		locations: make(map[string]int32),
		names:     make(map[int32]string),
		values:    make(map[int32]Value),
	}
	return id
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return
	}
	if _, ok := d.shaders[shader]; !ok {
		d.fail(driver.InvalidValue)
		return
	}
	if slices.Contains(p.shaders, shader) {
		d.fail(driver.InvalidOperation)
		return
	}
	p.shaders = append(p.shaders, shader)
}

// LinkProgram succeeds when exactly one compiled vertex and one compiled
// fragment shader are attached. Uniform locations are assigned in name order.
func (d *Driver) LinkProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return
	}

	stages := make(map[uint32]int)
	uniforms := make(map[string]string)
	var problems []string
	for _, id := range p.shaders {
		sh, ok := d.shaders[id]
		if !ok {
			continue
		}
		stages[sh.stage]++
		if !sh.compiled {
			problems = append(problems, fmt.Sprintf("%s shader %d is not compiled", driver.StageName(sh.stage), id))
			continue
		}
		for name, typ := range sh.uniforms {
			if prev, dup := uniforms[name]; dup && prev != typ {
				problems = append(problems, fmt.Sprintf("uniform %q declared as %s and %s", name, prev, typ))
			}
			uniforms[name] = typ
		}
	}
	if stages[driver.VertexShader] != 1 {
		problems = append(problems, "program needs exactly one vertex shader")
	}
	if stages[driver.FragmentShader] != 1 {
		problems = append(problems, "program needs exactly one fragment shader")
	}

	p.locations = make(map[string]int32)
	p.names = make(map[int32]string)
	p.values = make(map[int32]Value)
	if len(problems) > 0 {
		p.linked = false
		p.log = "error: " + strings.Join(problems, "\nerror: ") + "\n"
		return
	}
	for i, name := range slices.Sorted(maps.Keys(uniforms)) {
		loc := int32(i)
		p.locations[name] = loc
		p.names[loc] = name
	}
	p.linked = true
	p.log = ""
}

func (d *Driver) ValidateProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return
	}
	p.validated = p.linked
}

func (d *Driver) GetProgramiv(program, pname uint32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return 0
	}
	switch pname {
	case driver.LinkStatus:
		return boolParam(p.linked)
	case driver.ValidateStatus:
		return boolParam(p.validated)
	case driver.InfoLogLength:
		return logLength(p.log)
	default:
		d.fail(driver.InvalidEnum)
		return 0
	}
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return ""
	}
	return p.log
}

func (d *Driver) DeleteProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.programs[program]; !ok {
		return
	}
	delete(d.programs, program)
	if d.program == program {
		d.program = 0
	}
}

func (d *Driver) UseProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if program != 0 {
		p, ok := d.programs[program]
		if !ok {
			d.fail(driver.InvalidValue)
			return
		}
		if !p.linked {
			d.fail(driver.InvalidOperation)
			return
		}
	}
	d.program = program
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		d.fail(driver.InvalidValue)
		return driver.InvalidLocation
	}
	if !p.linked {
		d.fail(driver.InvalidOperation)
		return driver.InvalidLocation
	}
	loc, ok := p.locations[name]
	if !ok {
		return driver.InvalidLocation
	}
	return loc
}

// setUniform stores v at location in the current program. Location -1 is
// silently ignored, as in GL.
func (d *Driver) setUniform(location int32, v Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if location == driver.InvalidLocation {
		return
	}
	p, ok := d.programs[d.program]
	if !ok {
		d.fail(driver.InvalidOperation)
		return
	}
	if _, ok := p.names[location]; !ok {
		d.fail(driver.InvalidOperation)
		return
	}
	p.values[location] = v
}

func (d *Driver) Uniform1i(location int32, v int32) {
	d.setUniform(location, Value{Ints: []int32{v}})
}

func (d *Driver) Uniform1f(location int32, v float32) {
	d.setUniform(location, Value{Floats: []float32{v}})
}

func (d *Driver) Uniform2f(location int32, v0, v1 float32) {
	d.setUniform(location, Value{Floats: []float32{v0, v1}})
}

func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	d.setUniform(location, Value{Floats: []float32{v0, v1, v2}})
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.setUniform(location, Value{Floats: []float32{v0, v1, v2, v3}})
}

func (d *Driver) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	vals := make([]float32, 16)
	if transpose {
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				vals[c*4+r] = m[r*4+c]
			}
		}
	} else {
		copy(vals, m[:])
	}
	d.setUniform(location, Value{Floats: vals})
}

// CurrentProgram returns the program made current by UseProgram.
func (d *Driver) CurrentProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.program
}

// Uniform returns the value last stored for a uniform of program.
func (d *Driver) Uniform(program uint32, name string) (Value, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs[program]
	if !ok {
		return Value{}, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return Value{}, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// uniformSnapshot copies the named values of p. Caller holds d.mu.
func uniformSnapshot(p *programObject) map[string]Value {
	out := make(map[string]Value, len(p.values))
	for loc, v := range p.values {
		out[p.names[loc]] = v
	}
	return out
}

func boolParam(b bool) int32 {
	if b {
		return driver.True
	}
	return driver.False
}

// logLength reports the info log length including the terminating NUL.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
