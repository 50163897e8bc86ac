// Package viewer runs the interactive character viewer: window, frame loop,
// rig update and toon rendering.
package viewer

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/aim"
	"github.com/Faultbox/toonrig/internal/engine/audio"
	"github.com/Faultbox/toonrig/internal/engine/camera"
	"github.com/Faultbox/toonrig/internal/engine/character"
	"github.com/Faultbox/toonrig/internal/engine/debug"
	"github.com/Faultbox/toonrig/internal/engine/input"
	"github.com/Faultbox/toonrig/internal/engine/lighting"
	"github.com/Faultbox/toonrig/internal/engine/renderer"
	"github.com/Faultbox/toonrig/internal/engine/window"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	lights   lighting.Rig
	shots    *debug.ScreenshotCapture
	sounds   *audio.Manager
	shutter  []byte // custom shutter WAV, nil plays the built-in cue

	stage *Stage

	start   time.Time
	pointer math.Vec2

	log *zap.Logger
}

// New opens the window and loads the demo character.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		camera: camera.FromConfig(cfg.Camera),
		lights: lighting.FromConfig(cfg.Light),
		shots:  debug.NewScreenshotCaptureFromConfig(cfg.Screenshot, "toonrig"),
		sounds: audio.New(cfg.Audio.Volume),
		log:    logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: [3]float32{0.1, 0.1, 0.15},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	if cfg.Audio.Enabled {
		if err := v.sounds.Init(); err != nil {
			v.log.Warn("audio unavailable, continuing muted", zap.Error(err))
		}
		if path := cfg.Audio.Shutter; path != "" {
			if v.shutter, err = os.ReadFile(path); err != nil {
				v.log.Warn("shutter sound not loaded", zap.String("path", path), zap.Error(err))
			}
		}
	}
	v.stage = NewStage(cfg)
	v.load()

	v.log.Info("viewer initialized")
	return v, nil
}

// load (re)loads the character and restarts the blink clock.
func (v *Viewer) load() {
	v.stage.Load()
	v.start = time.Now()
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update(float32(dt), float32(now.Sub(v.start).Seconds()))

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dtMs", dt*1000))
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.cfg.Window.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	width, height := v.window.Size()
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
			width, height = event.Width, event.Height
		case input.EventMouseMove:
			v.pointer = aim.NormalizePointer(event.MouseX, event.MouseY, width, height)
			if v.input.IsButtonDown(sdl.BUTTON_RIGHT) {
				v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.WheelY))
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_R:
				v.load()
				v.sounds.Play(audio.CueReload)
			case sdl.SCANCODE_F12:
				v.screenshot()
			}
		}
	}
}

func (v *Viewer) update(dt, elapsed float32) {
	v.stage.Character.Update(character.Frame{
		Elapsed: elapsed,
		Delta:   dt,
		Pointer: v.pointer,
	})
}

func (v *Viewer) render() error {
	v.renderer.Begin()
	v.renderer.DrawGraph(v.stage.Character.Graph(), renderer.View{
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(v.renderer.Aspect()),
		Lights:     v.lights,
	})
	v.renderer.End()
	return nil
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.playShutter()
	v.log.Info("screenshot saved", zap.String("file", name))
}

func (v *Viewer) playShutter() {
	if v.shutter != nil {
		err := v.sounds.PlayWAV(v.shutter)
		if err == nil {
			return
		}
		v.log.Debug("custom shutter failed, using built-in cue", zap.Error(err))
	}
	v.sounds.Play(audio.CueShutter)
}

// Close releases everything in reverse order of creation.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.stage != nil {
		v.stage.Close()
	}
	v.sounds.Close()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
