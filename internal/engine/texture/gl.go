package texture

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options control sampling of an uploaded texture.
type Options struct {
	Nearest bool // nearest filtering, no mipmaps (tone gradients)
	Clamp   bool // clamp to edge instead of repeat
}

// Upload creates a GL texture from img. Requires a current GL context.
func Upload(img image.Image, opts Options) Handle {
	rgba := ToRGBA(img)
	w, h := int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())
	if w == 0 || h == 0 {
		return None
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))

	if opts.Nearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}
	wrap := int32(gl.REPEAT)
	if opts.Clamp {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return Handle(texID)
}

// Delete releases the GL texture behind h. None is ignored.
func Delete(h Handle) {
	if !h.Valid() {
		return
	}
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}

// Bind binds h (or nothing) to the given texture unit.
func Bind(unit uint32, h Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}
