// Package texture holds opaque GPU texture handles and the image helpers used to fill them.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Handle names a GPU texture. The zero Handle means "no texture".
// Handles are shared between materials; releasing one is the owner's call.
type Handle uint32

// None is the absent texture.
const None Handle = 0

// Valid reports whether h refers to a texture.
func (h Handle) Valid() bool { return h != None }

// ToRGBA converts any image into a tightly packed RGBA image anchored at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Checker builds a size x size checkerboard with cells of the given size.
func Checker(size, cell int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cell <= 0 {
		cell = size
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}
