package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/aim"
	"github.com/Faultbox/toonrig/internal/engine/audio"
	"github.com/Faultbox/toonrig/internal/engine/camera"
	"github.com/Faultbox/toonrig/internal/engine/character"
	"github.com/Faultbox/toonrig/internal/engine/debug"
	"github.com/Faultbox/toonrig/internal/engine/framebuffer"
	"github.com/Faultbox/toonrig/internal/engine/lighting"
	"github.com/Faultbox/toonrig/internal/engine/renderer"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/ui"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/internal/viewer"
	"github.com/Faultbox/toonrig/pkg/math"
)

const panelWidth = 300

// App is the tuner state.
type App struct {
	cfg *config.Config

	backend  *ui.Backend
	target   *framebuffer.Target
	renderer *renderer.Renderer
	stage    *viewer.Stage
	camera   *camera.OrbitCamera
	lights   lighting.Rig
	tuning   *ui.Tuning
	shots    *debug.ScreenshotCapture
	sounds   *audio.Manager

	start     time.Time
	last      time.Time
	pointer   math.Vec2
	lastMouse imgui.Vec2
	status    string

	log *zap.Logger
}

// NewApp opens the window, creates the offscreen target and loads the character.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		camera: camera.FromConfig(cfg.Camera),
		lights: lighting.FromConfig(cfg.Light),
		tuning: ui.NewTuning(),
		shots:  debug.NewScreenshotCaptureFromConfig(cfg.Screenshot, "tuner"),
		sounds: audio.New(cfg.Audio.Volume),
		log:    logger.Named("tuner"),
	}
	a.tuning.Aim = cfg.Aim.Enabled
	a.tuning.Blink = cfg.Blink.Enabled
	a.tuning.SunAzimuth, a.tuning.SunElevation = a.lights.SunAngles()
	a.tuning.Volume = float32(cfg.Audio.Volume)
	a.tuning.WebP = cfg.Screenshot.Format == "webp"

	var err error
	a.backend, err = ui.NewBackend("toonrig tuner", cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}

	w, h := cfg.Window.Width-panelWidth, cfg.Window.Height
	a.target, err = framebuffer.New(int32(w), int32(h))
	if err != nil {
		return nil, fmt.Errorf("offscreen target: %w", err)
	}
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: [3]float32{0.1, 0.1, 0.15},
	})
	if err != nil {
		a.target.Destroy()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	if cfg.Audio.Enabled {
		if err := a.sounds.Init(); err != nil {
			a.log.Warn("audio unavailable, continuing muted", zap.Error(err))
		}
	}

	a.stage = viewer.NewStage(cfg)
	a.load()
	a.last = time.Now()
	return a, nil
}

// load reloads the character and applies the current tuning to it.
func (a *App) load() {
	stats := a.stage.Load()
	a.tuning.Apply(a.stage.Character.Materials())
	a.start = time.Now()
	a.status = fmt.Sprintf("%d spring bones, %d collision meshes, %d eyes",
		stats.SpringBones, stats.CollisionMeshes, stats.Eyes)
}

// Run blocks until the window closes.
func (a *App) Run() {
	a.backend.Run(a.frame)
}

func (a *App) frame() {
	now := time.Now()
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now

	a.applyTuning()
	a.stage.Character.SetSystems(character.Systems{
		Springs: a.tuning.Springs,
		Aim:     a.tuning.Aim,
		Blink:   a.tuning.Blink,
	})
	if !a.tuning.Paused {
		a.stage.Character.Update(character.Frame{
			Elapsed: float32(now.Sub(a.start).Seconds()),
			Delta:   dt,
			Pointer: a.pointer,
		})
	}

	x, y, w, h := ui.Viewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, h))
	if imgui.BeginV("Tuning", nil, flags) {
		a.panel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+panelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-panelWidth, h))
	if imgui.BeginV("Preview", nil, flags) {
		a.preview()
	}
	imgui.End()
}

// applyTuning pushes the panel's light, volume and format settings.
func (a *App) applyTuning() {
	a.lights.PlaceSun(a.tuning.SunAzimuth, a.tuning.SunElevation)
	if vol := float64(a.tuning.Volume); vol != a.sounds.Volume() {
		a.sounds.SetVolume(vol)
	}
	if a.tuning.WebP {
		a.shots.SetFormat(texture.FormatWebP)
	} else {
		a.shots.SetFormat(texture.FormatPNG)
	}
}

func (a *App) panel() {
	materials := a.stage.Character.Materials()
	if a.tuning.Panel(len(materials)) {
		n := a.tuning.Apply(materials)
		a.log.Debug("materials retuned", zap.Int("count", n))
	}

	imgui.Separator()
	if imgui.Button("Reload") {
		a.load()
		a.sounds.Play(audio.CueReload)
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		a.screenshot()
	}
	imgui.TextDisabled(a.status)
	imgui.TextDisabled("(Right-drag to orbit, scroll to zoom)")
}

func (a *App) preview() {
	avail := imgui.ContentRegionAvail()
	if a.target.Resize(int32(avail.X), int32(avail.Y)) {
		w, h := a.target.Size()
		a.renderer.Resize(int(w), int(h))
	}

	restore := a.target.Begin()
	a.renderer.Begin()
	a.renderer.DrawGraph(a.stage.Character.Graph(), renderer.View{
		View:       a.camera.ViewMatrix(),
		Projection: a.camera.ProjectionMatrix(a.renderer.Aspect()),
		Lights:     a.lights,
	})
	a.renderer.End()
	restore()

	w, h := a.target.Size()
	rect := ui.Image(a.target.Texture(), float32(w), float32(h))
	if !rect.Hovered {
		return
	}

	mouse := imgui.MousePos()
	a.pointer = aim.NormalizePointer(int(mouse.X-rect.X), int(mouse.Y-rect.Y), int(rect.W), int(rect.H))
	if imgui.IsMouseDragging(imgui.MouseButtonRight) {
		a.camera.HandleDrag(mouse.X-a.lastMouse.X, mouse.Y-a.lastMouse.Y)
	}
	a.lastMouse = mouse

	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
}

func (a *App) screenshot() {
	w, h := a.target.Size()
	name, err := a.shots.CaptureFromPixels(a.target.Pixels(), int(w), int(h))
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		a.status = "screenshot failed"
		return
	}
	a.sounds.Play(audio.CueShutter)
	a.log.Info("screenshot saved", zap.String("file", name))
	a.status = name
}

// Close releases GL resources before the context goes away.
func (a *App) Close() {
	if a.stage != nil {
		a.stage.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.target != nil {
		a.target.Destroy()
	}
	a.sounds.Close()
}
