// Package ui provides the ImGui shell and panels of the material tuner.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// fontPaths are tried in order; the ImGui default font is used when none exists.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and its GL context.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(loadFont)
	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg := imgui.NewFontConfig()
		defer cfg.Destroy()
		imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, 15.0, cfg, nil)
		return
	}
}

// Run blocks running frame once per frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (x, y, width, height float32) {
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	return pos.X, pos.Y, size.X, size.Y
}

// Rect is where an image landed on screen.
type Rect struct {
	X, Y, W, H float32
	Hovered    bool
}

// Image draws a GL texture rendered bottom row first, fitted into the
// available region with aspect preserved.
func Image(texID uint32, width, height float32) Rect {
	avail := imgui.ContentRegionAvail()
	pos := imgui.CursorScreenPos()
	w, h := Fit(avail.X, avail.Y, width, height)
	ref := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(*ref,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
	return Rect{X: pos.X, Y: pos.Y, W: w, H: h, Hovered: imgui.IsItemHovered()}
}

// Fit scales width x height to fit inside availW x availH.
func Fit(availW, availH, width, height float32) (float32, float32) {
	if width <= 0 || height <= 0 || availW <= 0 || availH <= 0 {
		return 0, 0
	}
	scale := min(availW/width, availH/height)
	return width * scale, height * scale
}
