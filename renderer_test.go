package glrender

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/glrender/driver"
)

func TestRendererClear(t *testing.T) {
	ctx, d := newTestContext(t)
	r := NewRenderer(ctx)

	if err := r.SetClearColor(0.1, 0.2, 0.3, 1); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := r.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
	}
	if d.Clears() != 3 {
		t.Errorf("Clears() = %d, want 3", d.Clears())
	}
	if got := d.ClearColorValue(); got != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("clear color = %v", got)
	}
}

func TestRendererState(t *testing.T) {
	ctx, d := newTestContext(t)
	r := NewRenderer(ctx)

	if err := r.EnableBlending(); err != nil {
		t.Fatal(err)
	}
	if !d.Enabled(driver.Blend) {
		t.Error("blending not enabled")
	}
	if src, dst := d.BlendFactors(); src != driver.SrcAlpha || dst != driver.OneMinusSrcAlpha {
		t.Errorf("blend factors = 0x%X, 0x%X", src, dst)
	}

	if err := r.Viewport(960, 540); err != nil {
		t.Fatal(err)
	}
	if got := d.ViewportValue(); got != [4]int32{0, 0, 960, 540} {
		t.Errorf("viewport = %v", got)
	}

	var glErr *GLError
	if err := r.Viewport(-1, 10); !errors.As(err, &glErr) || !glErr.Has(driver.InvalidValue) {
		t.Errorf("Viewport(-1, 10) = %v, want GL_INVALID_VALUE", err)
	}
}

func TestRendererDraw(t *testing.T) {
	ctx, d := newTestContext(t)
	q := mustQuad(t, ctx)
	shader := mustShader(t, ctx)
	tex, err := NewTexture(ctx, writeTestPNG(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := tex.Bind(0); err != nil {
		t.Fatal(err)
	}
	if err := shader.SetUniform1i("u_Texture", 0); err != nil {
		t.Fatal(err)
	}
	if err := shader.SetUniform4f("u_Color", 0.8, 0.3, 0.8, 1.0); err != nil {
		t.Fatal(err)
	}
	// Leave other objects bound to show Draw binds what it is given.
	if err := q.va.Unbind(); err != nil {
		t.Fatal(err)
	}
	if err := shader.Unbind(); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(ctx)
	if err := r.Draw(q.va, shader, q.ib.Count()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	draws := d.Draws()
	if len(draws) != 1 {
		t.Fatalf("recorded %d draws, want 1", len(draws))
	}
	dc := draws[0]
	if dc.Mode != driver.Triangles || dc.Count != 6 || dc.Type != driver.UnsignedInt || dc.Offset != 0 {
		t.Errorf("draw = mode 0x%X count %d type 0x%X offset %d", dc.Mode, dc.Count, dc.Type, dc.Offset)
	}
	if dc.Program != shader.ID() || dc.VertexArray != q.va.ID() || dc.ElementBuffer != q.ib.ID() {
		t.Errorf("draw used program %d vao %d ibo %d", dc.Program, dc.VertexArray, dc.ElementBuffer)
	}
	if dc.Textures[0] != tex.ID() {
		t.Errorf("unit 0 texture at draw = %d, want %d", dc.Textures[0], tex.ID())
	}
	if got := dc.Uniforms["u_Color"].Floats; !slices.Equal(got, []float32{0.8, 0.3, 0.8, 1.0}) {
		t.Errorf("u_Color at draw = %v", got)
	}
	if got := dc.Uniforms["u_Texture"].Ints; !slices.Equal(got, []int32{0}) {
		t.Errorf("u_Texture at draw = %v", got)
	}
}

func TestRendererDrawSeesLatestUniform(t *testing.T) {
	ctx, d := newTestContext(t)
	q := mustQuad(t, ctx)
	shader := mustShader(t, ctx)
	r := NewRenderer(ctx)

	for _, red := range []float32{0.0, 0.05, 0.1} {
		if err := shader.SetUniform4f("u_Color", red, 0.3, 0.8, 1.0); err != nil {
			t.Fatal(err)
		}
		if err := r.Draw(q.va, shader, 6); err != nil {
			t.Fatal(err)
		}
	}

	draws := d.Draws()
	if len(draws) != 3 {
		t.Fatalf("recorded %d draws, want 3", len(draws))
	}
	for i, want := range []float32{0.0, 0.05, 0.1} {
		if got := draws[i].Uniforms["u_Color"].Floats[0]; got != want {
			t.Errorf("draw %d red = %v, want %v", i, got, want)
		}
	}
}

func TestRendererDrawErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	q := mustQuad(t, ctx)
	shader := mustShader(t, ctx)
	r := NewRenderer(ctx)

	if err := r.Draw(q.va, shader, -1); err == nil {
		t.Error("Draw() with a negative count should fail")
	}

	deleted := mustShader(t, ctx)
	if err := deleted.Delete(); err != nil {
		t.Fatal(err)
	}
	if err := r.Draw(q.va, deleted, 6); !errors.Is(err, ErrDeleted) {
		t.Errorf("Draw() with deleted shader = %v, want ErrDeleted", err)
	}

	if err := q.va.Delete(); err != nil {
		t.Fatal(err)
	}
	if err := r.Draw(q.va, shader, 6); !errors.Is(err, ErrDeleted) {
		t.Errorf("Draw() with deleted vertex array = %v, want ErrDeleted", err)
	}
}
