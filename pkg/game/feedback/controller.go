package feedback

import (
	"image/color"
	"time"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/renderer"
)

// Config holds the tints and reject animation timing
type Config struct {
	ValidColor   color.RGBA
	InvalidColor color.RGBA

	Duration       time.Duration
	ShakeAmplitude float64 // world units
	ShakeSpeed     float64 // radians per second
	FlashSpeed     float64 // full original→invalid→original cycles per second
}

// DefaultConfig returns green/red tints and a half second reject
func DefaultConfig() Config {
	return Config{
		ValidColor:     color.RGBA{R: 80, G: 220, B: 120, A: 160},
		InvalidColor:   color.RGBA{R: 230, G: 60, B: 60, A: 200},
		Duration:       500 * time.Millisecond,
		ShakeAmplitude: 0.08,
		ShakeSpeed:     40,
		FlashSpeed:     4,
	}
}

// Tint returns the ghost color for a verdict
func (c Config) Tint(valid bool) color.RGBA {
	if valid {
		return c.ValidColor
	}
	return c.InvalidColor
}

// Controller owns the FeedbackState of one widget. During a reject it
// drives the clone's visual through the renderer and releases it when the
// animation ends or is cancelled.
type Controller struct {
	cfg   Config
	out   renderer.Renderer
	state State

	clone    world.ObjectID
	original renderer.Visual
}

// NewController creates an idle controller drawing through out
func NewController(cfg Config, out renderer.Renderer) *Controller {
	return &Controller{cfg: cfg, out: out, state: Idle{}}
}

// Config returns the controller's configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current feedback state
func (c *Controller) State() State {
	return c.state
}

// Preview enters Previewing and returns the ghost tint for the verdict.
// Ignored while a reject is playing.
func (c *Controller) Preview(valid bool) color.RGBA {
	if _, ok := c.state.(RejectAnimating); !ok {
		c.state = Previewing{Valid: valid}
	}
	return c.cfg.Tint(valid)
}

// StartReject begins the reject animation on clone, whose current visual
// is v. The clone is handed over: the controller destroys it when done.
func (c *Controller) StartReject(clone world.ObjectID, v renderer.Visual) {
	c.clone = clone
	c.original = v
	c.state = RejectAnimating{Start: v.Position}
}

// Advance moves the reject animation on by dt of real time. It returns
// true on the step that finishes it: the clone's original color and
// position are restored, the clone is destroyed and the state is Idle.
func (c *Controller) Advance(dt time.Duration) bool {
	ra, ok := c.state.(RejectAnimating)
	if !ok {
		return false
	}
	if dt > 0 {
		ra.Elapsed += dt
	}

	if ra.Elapsed >= c.cfg.Duration {
		c.out.Update(c.clone, c.original)
		c.release()
		return true
	}

	v := c.original
	v.Position = ra.Start.Add(ShakeOffset(c.cfg, ra.Elapsed))
	v.Color = FlashColor(c.cfg, c.original.Color, ra.Elapsed)
	c.out.Update(c.clone, v)
	c.state = ra
	return false
}

// Cancel stops any reject in progress, destroying its clone now, and
// returns to Idle
func (c *Controller) Cancel() {
	if _, ok := c.state.(RejectAnimating); ok {
		c.release()
		return
	}
	c.state = Idle{}
}

// Reset returns to Idle without touching any visual
func (c *Controller) Reset() {
	c.state = Idle{}
	c.clone = world.NoObject
}

func (c *Controller) release() {
	if !c.clone.IsZero() {
		c.out.Destroy(c.clone)
	}
	c.clone = world.NoObject
	c.original = renderer.Visual{}
	c.state = Idle{}
}
