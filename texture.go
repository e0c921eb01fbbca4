package glrender

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/glrender/driver"
)

// Texture owns one 2D RGBA8 texture.
type Texture struct {
	ctx    *Context
	id     uint32
	path   string
	width  int
	height int
}

// NewTexture decodes the image at path and uploads it.
// PNG, JPEG, GIF, BMP, TIFF and WebP files are supported.
func NewTexture(ctx *Context, path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glrender: open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("glrender: decode texture %s: %w", path, err)
	}
	Logger().Debug("texture decoded", "path", path, "format", format, "bounds", img.Bounds())

	t, err := NewTextureFromImage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	t.path = path
	return t, nil
}

// NewTextureFromImage uploads img as a texture.
//
// Pixels are converted to non-premultiplied RGBA and rows are flipped so
// the first row uploaded is the bottom of the image, matching GL's texture
// origin. Filtering is linear and coordinates clamp to the edge. The CPU
// copy is dropped once the upload is done.
func NewTextureFromImage(ctx *Context, img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidDimensions
	}
	pixels := flippedRGBA(img)

	var id uint32
	if err := ctx.call("GenTexture", func() { id = ctx.drv.GenTexture() }); err != nil {
		return nil, err
	}
	t := &Texture{ctx: ctx, id: id, width: b.Dx(), height: b.Dy()}
	if err := t.upload(pixels); err != nil {
		_ = t.Delete()
		return nil, err
	}
	if err := ctx.bindTexture(ctx.bindings.ActiveTextureUnit, 0); err != nil {
		_ = t.Delete()
		return nil, err
	}
	Logger().Debug("texture created", "id", id, "width", t.width, "height", t.height)
	return t, nil
}

func (t *Texture) upload(pixels *image.NRGBA) error {
	ctx := t.ctx
	if err := ctx.bindTexture(ctx.bindings.ActiveTextureUnit, t.id); err != nil {
		return err
	}
	return ctx.call("TexImage2D", func() {
		ctx.drv.TexParameteri(driver.Texture2D, driver.TextureMinFilter, int32(driver.Linear))
		ctx.drv.TexParameteri(driver.Texture2D, driver.TextureMagFilter, int32(driver.Linear))
		ctx.drv.TexParameteri(driver.Texture2D, driver.TextureWrapS, int32(driver.ClampToEdge))
		ctx.drv.TexParameteri(driver.Texture2D, driver.TextureWrapT, int32(driver.ClampToEdge))
		ctx.drv.TexImage2D(driver.Texture2D, 0, int32(driver.RGBA8), int32(t.width), int32(t.height),
			driver.RGBA, driver.UnsignedByte, pixels.Pix)
	})
}

// flippedRGBA converts img to tightly packed NRGBA with rows bottom-up.
func flippedRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	row := dst.Stride
	tmp := make([]byte, row)
	for top, bottom := 0, dst.Rect.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := dst.Pix[top*row : (top+1)*row]
		bm := dst.Pix[bottom*row : (bottom+1)*row]
		copy(tmp, t)
		copy(t, bm)
		copy(bm, tmp)
	}
	return dst
}

// ID returns the texture handle, 0 after Delete.
func (t *Texture) ID() uint32 { return t.id }

// Path returns the file the texture was loaded from, if any.
func (t *Texture) Path() string { return t.path }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Bind binds the texture to texture unit slot (0 for the first unit).
func (t *Texture) Bind(slot uint32) error {
	if t.id == 0 {
		return ErrDeleted
	}
	if slot >= driver.MaxTextureUnits {
		return fmt.Errorf("%w: %d", ErrInvalidTextureSlot, slot)
	}
	return t.ctx.bindTexture(slot, t.id)
}

// Unbind clears the texture binding of the active unit.
func (t *Texture) Unbind() error {
	return t.ctx.bindTexture(t.ctx.bindings.ActiveTextureUnit, 0)
}

// Delete releases the texture. Calling Delete again is a no-op.
func (t *Texture) Delete() error {
	if t.id == 0 {
		return nil
	}
	id := t.id
	t.id = 0
	t.ctx.forgetTexture(id)
	Logger().Debug("texture deleted", "id", id)
	return t.ctx.call("DeleteTexture", func() { t.ctx.drv.DeleteTexture(id) })
}
