// Package config handles viewer and rig configuration loading and management.
package config

import gomath "math"

// Config holds all settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Light      LightConfig      `yaml:"light"`
	Spring     SpringConfig     `yaml:"spring"`
	Collision  CollisionConfig  `yaml:"collision"`
	Aim        AimConfig        `yaml:"aim"`
	Blink      BlinkConfig      `yaml:"blink"`
	Audio      AudioConfig      `yaml:"audio"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig places the fixed viewer camera.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"` // degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// LightConfig holds the single directional light and ambient term.
// Zero intensity disables the light entirely (NUM_DIR_LIGHTS 0).
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Ambient   [3]float32 `yaml:"ambient"`
}

// SpringParams are the damped spring coefficients for a group of bones.
type SpringParams struct {
	Damping   float32 `yaml:"damping"`
	Stiffness float32 `yaml:"stiffness"`
}

// ExtraBone names a bone registered regardless of the numeric suffix rule.
type ExtraBone struct {
	Name  string `yaml:"name"`
	Exact bool   `yaml:"exact"`
}

// Families maps a lower-case name tag to the minimum suffix number of the
// bones carrying it. A file that sets families replaces the defaults.
type Families map[string]int

// SpringConfig holds secondary motion settings.
type SpringConfig struct {
	HeadBone      string       `yaml:"head_bone"`
	Hair          SpringParams `yaml:"hair"`
	Extra         SpringParams `yaml:"extra"`
	ExtraBones    []ExtraBone  `yaml:"extra_bones"`
	MinBoneNumber int          `yaml:"min_bone_number"`
	Families      Families     `yaml:"families"`
	MaxSubstep    float32      `yaml:"max_substep"`
	MaxDelta      float32      `yaml:"max_delta"`
}

// CollisionConfig holds spring bone collision settings.
type CollisionConfig struct {
	MeshNames         []string `yaml:"mesh_names"`
	MeshPrefix        string   `yaml:"mesh_prefix"`
	DistanceThreshold float32  `yaml:"distance_threshold"`
	OffsetY           float32  `yaml:"offset_y"`
	LerpFactor        float32  `yaml:"lerp_factor"`
	SimplifyFactor    float64  `yaml:"simplify_factor"` // 0 keeps full collision geometry
}

// AimConfig holds pointer-driven neck rotation settings.
type AimConfig struct {
	Enabled       bool    `yaml:"enabled"`
	NeckBone      string  `yaml:"neck_bone"`
	MaxAngle      float32 `yaml:"max_angle"` // radians
	VerticalScale float32 `yaml:"vertical_scale"`
	Smoothing     float32 `yaml:"smoothing"`
}

// BlinkConfig holds eye blink settings.
type BlinkConfig struct {
	Enabled  bool    `yaml:"enabled"`
	EyeToken string  `yaml:"eye_token"`
	Period   float32 `yaml:"period"`
	CloseEnd float32 `yaml:"close_end"` // fraction of the period
	OpenEnd  float32 `yaml:"open_end"`  // fraction of the period
}

// AudioConfig holds viewer sound cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	Shutter string  `yaml:"shutter"` // optional WAV file replacing the synthesized shutter cue
}

// ScreenshotConfig holds where and how captures are written.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "toonrig",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position: [3]float32{4, 2, 3},
			Target:   [3]float32{0, 0.8, 0},
			FOV:      30,
			Near:     0.1,
			Far:      100,
		},
		Light: LightConfig{
			Position:  [3]float32{2, 2, 2},
			Color:     [3]float32{1, 1, 1},
			Intensity: 3,
			Ambient:   [3]float32{0.35, 0.35, 0.4},
		},
		Spring: SpringConfig{
			HeadBone: "head",
			Hair:     SpringParams{Damping: 200, Stiffness: 2000},
			Extra:    SpringParams{Damping: 80, Stiffness: 1200},
			ExtraBones: []ExtraBone{
				{Name: "bake1", Exact: true},
				{Name: "bake4", Exact: true},
				{Name: "bake5", Exact: true},
			},
			MinBoneNumber: 5,
			Families:      Families{"tail": 2},
			MaxSubstep:    1.0 / 240,
			MaxDelta:      0.1,
		},
		Collision: CollisionConfig{
			MeshNames: []string{
				"shoes_mesh_shape_mesh015",
				"cloth_shape_0008",
				"cloth_shape_0008_1",
			},
			MeshPrefix:        "hair",
			DistanceThreshold: 0.03,
			OffsetY:           0.02,
			LerpFactor:        0.3,
		},
		Aim: AimConfig{
			Enabled:       true,
			NeckBone:      "neck",
			MaxAngle:      gomath.Pi / 6,
			VerticalScale: 0.5,
			Smoothing:     0.08,
		},
		Blink: BlinkConfig{
			Enabled:  true,
			EyeToken: "eye",
			Period:   1.0,
			CloseEnd: 0.167,
			OpenEnd:  0.25,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
