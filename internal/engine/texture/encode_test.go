package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"swatch.webp", FormatWebP},
		{"out/SWATCH.WEBP", FormatWebP},
		{"swatch.png", FormatPNG},
		{"swatch", FormatPNG},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	img := Checker(4, 2, color.White, color.Black)
	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "swatch.webp")
	if err := Save(path, Checker(8, 4, color.White, color.Black)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("output is not a RIFF/WEBP container")
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dst := Downsample(src, 2, 2)
	if dst.Bounds().Dx() != 2 || dst.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if c := dst.RGBAAt(1, 1); c.R < 250 || c.A < 250 {
		t.Errorf("uniform white scaled to %v", c)
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows, bottom row first: red then blue.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows() error: %v", err)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("top row = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 {
		t.Errorf("bottom row = %v, want red", c)
	}

	if _, err := FlipRows(pixels, 2, 2); err == nil {
		t.Error("size mismatch not reported")
	}
}
