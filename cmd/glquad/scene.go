package main

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glrender"
	"github.com/gogpu/glrender/internal/config"
)

// Quad vertices in pixels around the origin: position xy, texture uv.
var (
	quadVertices = []float32{
		-100, -100, 0, 0,
		100, -100, 1, 0,
		100, 100, 1, 1,
		-100, 100, 0, 1,
	}
	quadIndices = []uint32{0, 1, 2, 2, 3, 0}
)

// pulse bounces a value between 0 and 1.
type pulse struct {
	value float32
	step  float32
	rate  float32
}

func newPulse(rate float32) pulse {
	return pulse{step: rate, rate: rate}
}

// advance reverses direction once the value leaves [0, 1], then steps.
func (p *pulse) advance() {
	if p.value > 1 {
		p.step = -p.rate
	} else if p.value < 0 {
		p.step = p.rate
	}
	p.value += p.step
}

// scene owns the GL objects for the textured quad.
type scene struct {
	ctx      *glrender.Context
	renderer *glrender.Renderer

	vb      *glrender.VertexBuffer
	ib      *glrender.IndexBuffer
	va      *glrender.VertexArray
	shader  *glrender.Shader
	texture *glrender.Texture

	red           pulse
	width, height int
}

// newScene builds the quad, its shader and texture. Everything created is
// released again on failure.
func newScene(ctx *glrender.Context, cfg config.Config, width, height int) (_ *scene, err error) {
	s := &scene{
		ctx:      ctx,
		renderer: glrender.NewRenderer(ctx),
		red:      newPulse(0.05),
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, s.delete())
		}
	}()

	if err := s.renderer.EnableBlending(); err != nil {
		return nil, err
	}

	if s.va, err = glrender.NewVertexArray(ctx); err != nil {
		return nil, err
	}
	if s.vb, err = glrender.NewVertexBuffer(ctx, quadVertices); err != nil {
		return nil, err
	}
	if s.ib, err = glrender.NewIndexBuffer(ctx, quadIndices); err != nil {
		return nil, err
	}
	layout := glrender.NewVertexBufferLayout()
	glrender.Push[float32](layout, 2)
	glrender.Push[float32](layout, 2)
	if err := s.va.AddBuffer(s.vb, s.ib, layout); err != nil {
		return nil, err
	}

	if s.shader, err = glrender.NewShaderFromFile(ctx, cfg.Shader); err != nil {
		return nil, err
	}
	if cfg.Texture != "" {
		if s.texture, err = glrender.NewTexture(ctx, cfg.Texture); err != nil {
			return nil, err
		}
		if err := s.texture.Bind(0); err != nil {
			return nil, err
		}
	}
	if err := s.bindUniforms(); err != nil {
		return nil, err
	}
	if err := s.resize(width, height); err != nil {
		return nil, err
	}

	// Leave the context unbound; Draw binds what it needs.
	if err := s.va.Unbind(); err != nil {
		return nil, err
	}
	if err := s.vb.Unbind(); err != nil {
		return nil, err
	}
	if err := s.shader.Unbind(); err != nil {
		return nil, err
	}
	return s, nil
}

// bindUniforms sets the uniforms that only change when the program does.
func (s *scene) bindUniforms() error {
	if s.texture != nil {
		if err := optional(s.shader.SetUniform1i("u_Texture", 0)); err != nil {
			return err
		}
	}
	return s.setMVP()
}

// resize updates the viewport and projection for a width x height
// framebuffer.
func (s *scene) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		// Minimized.
		return nil
	}
	s.width, s.height = width, height
	if err := s.renderer.Viewport(width, height); err != nil {
		return err
	}
	return s.setMVP()
}

// setMVP places the quad at the center of a pixel-space orthographic
// projection.
func (s *scene) setMVP() error {
	if s.width == 0 || s.height == 0 {
		return nil
	}
	w, h := float32(s.width), float32(s.height)
	proj := mgl32.Ortho(0, w, 0, h, -1, 1)
	view := mgl32.Ident4()
	model := mgl32.Translate3D(w/2, h/2, 0)
	return optional(s.shader.SetUniformMat4f("u_MVP", proj.Mul4(view).Mul4(model)))
}

// frame clears the framebuffer and draws the quad with the current color,
// then advances the color animation.
func (s *scene) frame() error {
	if err := s.renderer.Clear(); err != nil {
		return err
	}
	if err := optional(s.shader.SetUniform4f("u_Color", s.red.value, 0.3, 0.8, 1.0)); err != nil {
		return err
	}
	if s.texture != nil {
		if err := s.texture.Bind(0); err != nil {
			return err
		}
	}
	if err := s.renderer.Draw(s.va, s.shader, s.ib.Count()); err != nil {
		return fmt.Errorf("draw quad: %w", err)
	}
	s.red.advance()
	return nil
}

// reload rebuilds the shader from its file and restores its uniforms.
// On failure the previous program stays in use.
func (s *scene) reload() error {
	if err := s.shader.ReloadFromFile(); err != nil {
		return err
	}
	return s.bindUniforms()
}

// delete releases every object the scene created.
func (s *scene) delete() error {
	var errs []error
	if s.texture != nil {
		errs = append(errs, s.texture.Delete())
	}
	if s.shader != nil {
		errs = append(errs, s.shader.Delete())
	}
	if s.va != nil {
		errs = append(errs, s.va.Delete())
	}
	if s.ib != nil {
		errs = append(errs, s.ib.Delete())
	}
	if s.vb != nil {
		errs = append(errs, s.vb.Delete())
	}
	return errors.Join(errs...)
}

// optional drops uniform-not-found errors. A shader being edited may not
// declare every uniform the scene sets.
func optional(err error) error {
	if errors.Is(err, glrender.ErrUniformNotFound) {
		return nil
	}
	return err
}
