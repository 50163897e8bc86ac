package config

import "fmt"

// Validate reports settings the rig cannot run with. Load calls it after merging.
func (c *Config) Validate() error {
	if c.Spring.Hair.Damping <= 0 || c.Spring.Hair.Stiffness <= 0 {
		return fmt.Errorf("spring.hair: damping and stiffness must be > 0")
	}
	if c.Spring.Extra.Damping <= 0 || c.Spring.Extra.Stiffness <= 0 {
		return fmt.Errorf("spring.extra: damping and stiffness must be > 0")
	}
	if c.Spring.MaxSubstep <= 0 {
		return fmt.Errorf("spring.max_substep must be > 0")
	}
	if c.Spring.MaxDelta <= 0 {
		return fmt.Errorf("spring.max_delta must be > 0")
	}
	if c.Collision.LerpFactor <= 0 || c.Collision.LerpFactor >= 1 {
		return fmt.Errorf("collision.lerp_factor must be in (0,1), got %v", c.Collision.LerpFactor)
	}
	if c.Collision.SimplifyFactor < 0 || c.Collision.SimplifyFactor > 1 {
		return fmt.Errorf("collision.simplify_factor must be in [0,1], got %v", c.Collision.SimplifyFactor)
	}
	if c.Aim.Smoothing <= 0 || c.Aim.Smoothing > 1 {
		return fmt.Errorf("aim.smoothing must be in (0,1], got %v", c.Aim.Smoothing)
	}
	if c.Blink.Period <= 0 {
		return fmt.Errorf("blink.period must be > 0")
	}
	if c.Blink.CloseEnd <= 0 || c.Blink.OpenEnd <= c.Blink.CloseEnd || c.Blink.OpenEnd > 1 {
		return fmt.Errorf("blink: need 0 < close_end < open_end <= 1, got %v/%v", c.Blink.CloseEnd, c.Blink.OpenEnd)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1], got %v", c.Audio.Volume)
	}
	if f := c.Screenshot.Format; f != "png" && f != "webp" {
		return fmt.Errorf("screenshot.format must be png or webp, got %q", f)
	}
	return nil
}
