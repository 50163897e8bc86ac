package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 3, 5, 5))
	gray.SetGray(2, 3, color.Gray{Y: 200})

	rgba := ToRGBA(gray)
	if rgba.Rect != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v, want origin-anchored 3x2", rgba.Rect)
	}
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}

	packed := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if ToRGBA(packed) != packed {
		t.Error("packed RGBA should be returned as is")
	}
}

func TestChecker(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	img := Checker(8, 4, white, black)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, white},
		{4, 0, black},
		{0, 4, black},
		{7, 7, white},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHandleValid(t *testing.T) {
	if None.Valid() {
		t.Error("None should not be valid")
	}
	if !Handle(3).Valid() {
		t.Error("Handle(3) should be valid")
	}
}
