package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/glrender"
	"github.com/gogpu/glrender/driver"
	"github.com/gogpu/glrender/driver/software"
	"github.com/gogpu/glrender/internal/config"
)

const basicShader = `#shader vertex
#version 410 core
layout(location = 0) in vec4 position;
layout(location = 1) in vec2 texCoord;
out vec2 v_TexCoord;
uniform mat4 u_MVP;
void main() {
	gl_Position = u_MVP * position;
	v_TexCoord = texCoord;
}
#shader fragment
#version 410 core
layout(location = 0) out vec4 color;
in vec2 v_TexCoord;
uniform vec4 u_Color;
uniform sampler2D u_Texture;
void main() {
	color = texture(u_Texture, v_TexCoord) * u_Color;
}
`

// testAssets writes a shader and a 2x2 texture and returns a config using
// them.
func testAssets(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	shader := filepath.Join(dir, "Basic.shader")
	if err := os.WriteFile(shader, []byte(basicShader), 0o600); err != nil {
		t.Fatal(err)
	}

	texture := filepath.Join(dir, "logo.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.SetNRGBA(i%2, i/2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	}
	f, err := os.Create(texture)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Driver = driver.NameSoftware
	cfg.Shader = shader
	cfg.Texture = texture
	return cfg
}

func newTestScene(t *testing.T, cfg config.Config) (*scene, *software.Driver) {
	t.Helper()
	d := software.New()
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	ctx, err := glrender.NewContext(d)
	if err != nil {
		t.Fatal(err)
	}
	s, err := newScene(ctx, cfg, 960, 540)
	if err != nil {
		t.Fatalf("newScene() error = %v", err)
	}
	return s, d
}

func TestPulse(t *testing.T) {
	p := newPulse(0.05)
	var values []float32
	for range 60 {
		values = append(values, p.value)
		p.advance()
	}

	if values[0] != 0 || math.Abs(float64(values[1]-0.05)) > 1e-6 {
		t.Errorf("first values = %v, want 0, 0.05", values[:2])
	}
	var peak float32
	for _, v := range values {
		peak = max(peak, v)
		if v < -0.06 || v > 1.06 {
			t.Fatalf("value %v escaped [0, 1] by more than one step", v)
		}
	}
	if peak < 1 {
		t.Errorf("peak = %v, want the pulse to reach 1", peak)
	}
	if last := values[len(values)-1]; last >= peak {
		t.Errorf("pulse did not turn around: last %v, peak %v", last, peak)
	}
}

func TestSceneSetup(t *testing.T) {
	s, d := newTestScene(t, testAssets(t))

	if !d.Enabled(driver.Blend) {
		t.Error("blending not enabled")
	}
	if got := d.ViewportValue(); got != [4]int32{0, 0, 960, 540} {
		t.Errorf("viewport = %v", got)
	}
	if v, ok := d.Uniform(s.shader.ID(), "u_Texture"); !ok || v.Ints[0] != 0 {
		t.Errorf("u_Texture = %+v, %v; want slot 0", v, ok)
	}

	mvp, ok := d.Uniform(s.shader.ID(), "u_MVP")
	if !ok {
		t.Fatal("u_MVP not set")
	}
	// The quad center (origin) lands at the center of clip space.
	center := [4]float32{}
	for row := range 4 {
		center[row] = mvp.Floats[12+row]
	}
	if math.Abs(float64(center[0])) > 1e-5 || math.Abs(float64(center[1])) > 1e-5 || center[3] != 1 {
		t.Errorf("quad center in clip space = %v, want (0, 0, _, 1)", center)
	}

	if err := s.delete(); err != nil {
		t.Fatalf("delete() error = %v", err)
	}
	if n := d.LiveObjects(); n != 0 {
		t.Errorf("LiveObjects() = %d after delete, want 0", n)
	}
}

func TestSceneFrames(t *testing.T) {
	s, d := newTestScene(t, testAssets(t))
	t.Cleanup(func() { _ = s.delete() })

	const frames = 5
	for range frames {
		if err := s.frame(); err != nil {
			t.Fatalf("frame() error = %v", err)
		}
	}

	draws := d.Draws()
	if len(draws) != frames || d.Clears() != frames {
		t.Fatalf("draws = %d, clears = %d; want %d each", len(draws), d.Clears(), frames)
	}
	for i, dc := range draws {
		if dc.Count != 6 || dc.Textures[0] != s.texture.ID() {
			t.Errorf("draw %d = %+v", i, dc)
		}
		red := dc.Uniforms["u_Color"].Floats[0]
		if want := float32(i) * 0.05; math.Abs(float64(red-want)) > 1e-5 {
			t.Errorf("draw %d red = %v, want %v", i, red, want)
		}
	}
}

func TestSceneWithoutTexture(t *testing.T) {
	cfg := testAssets(t)
	cfg.Texture = ""
	s, d := newTestScene(t, cfg)
	t.Cleanup(func() { _ = s.delete() })

	if err := s.frame(); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	if got := d.Draws()[0].Textures; len(got) != 0 {
		t.Errorf("textures at draw = %v, want none", got)
	}
}

func TestSceneSetupFailureReleasesObjects(t *testing.T) {
	cfg := testAssets(t)
	cfg.Texture = filepath.Join(t.TempDir(), "missing.png")

	d := software.New()
	_ = d.Init()
	ctx, err := glrender.NewContext(d)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newScene(ctx, cfg, 960, 540); err == nil {
		t.Fatal("newScene() should fail without its texture")
	}
	if n := d.LiveObjects(); n != 0 {
		t.Errorf("LiveObjects() = %d after failed setup, want 0", n)
	}
}

func TestSceneReload(t *testing.T) {
	cfg := testAssets(t)
	s, d := newTestScene(t, cfg)
	t.Cleanup(func() { _ = s.delete() })
	oldID := s.shader.ID()

	// A broken edit keeps the running program.
	if err := os.WriteFile(cfg.Shader, []byte("#shader vertex\n#shader fragment\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(); err == nil {
		t.Fatal("reload() of a broken shader should fail")
	}
	if s.shader.ID() != oldID {
		t.Fatal("broken reload replaced the program")
	}

	// Dropping u_Color from the shader is tolerated.
	edited := strings.Replace(basicShader, "uniform vec4 u_Color;", "const vec4 u_Color = vec4(1.0);", 1)
	if err := os.WriteFile(cfg.Shader, []byte(edited), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(); err != nil {
		t.Fatalf("reload() error = %v", err)
	}
	if s.shader.ID() == oldID {
		t.Fatal("reload kept the old program")
	}
	if _, ok := d.Uniform(s.shader.ID(), "u_MVP"); !ok {
		t.Error("u_MVP not restored after reload")
	}
	if err := s.frame(); err != nil {
		t.Fatalf("frame() after reload error = %v", err)
	}
}

func TestSceneResize(t *testing.T) {
	s, d := newTestScene(t, testAssets(t))
	t.Cleanup(func() { _ = s.delete() })

	if err := s.resize(0, 0); err != nil {
		t.Fatalf("resize(0, 0) error = %v", err)
	}
	if got := d.ViewportValue(); got != [4]int32{0, 0, 960, 540} {
		t.Errorf("minimized resize changed the viewport to %v", got)
	}
	if err := s.resize(1920, 1080); err != nil {
		t.Fatal(err)
	}
	if got := d.ViewportValue(); got != [4]int32{0, 0, 1920, 1080} {
		t.Errorf("viewport = %v", got)
	}
}

func TestRunHeadless(t *testing.T) {
	orig := glrender.Logger()
	t.Cleanup(func() { glrender.SetLogger(orig) })

	cfg := testAssets(t)
	path := filepath.Join(t.TempDir(), config.DefaultPath)
	content := "driver = \"software\"\nlog_level = \"error\"\nframes = 3\n" +
		"shader = " + quote(cfg.Shader) + "\ntexture = " + quote(cfg.Texture) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := run(path); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultPath)
	if err := os.WriteFile(path, []byte("frames = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := run(path); err == nil {
		t.Error("run() should reject an invalid config")
	}
}

func TestHotReloadHook(t *testing.T) {
	cfg := testAssets(t)
	cfg.HotReload = true
	s, _ := newTestScene(t, cfg)
	t.Cleanup(func() { _ = s.delete() })

	reload, stop, err := hotReload(cfg, s)
	if err != nil {
		t.Fatalf("hotReload() error = %v", err)
	}
	defer stop()

	oldID := s.shader.ID()
	if err := os.WriteFile(cfg.Shader, []byte(basicShader+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for s.shader.ID() == oldID && time.Now().Before(deadline) {
		reload()
		time.Sleep(10 * time.Millisecond)
	}
	if s.shader.ID() == oldID {
		t.Error("shader was not reloaded after its file changed")
	}
}

// quote returns a TOML literal string.
func quote(s string) string {
	return "'" + s + "'"
}
