package world

import "errors"

// ErrMissingCollaborator is returned when a screen position cannot be
// resolved because no camera/canvas context is available.
var ErrMissingCollaborator = errors.New("world: no camera or canvas to resolve screen position")

// Camera is an orthographic 2D camera. Screen Y grows downwards, world Y
// grows upwards.
type Camera struct {
	Position      Vec3    // world position at the center of the viewport
	PixelsPerUnit float64 // scale; must be positive
	Width         int     // viewport width in pixels
	Height        int     // viewport height in pixels
}

// NewCamera creates a camera centred on pos
func NewCamera(pos Vec3, pixelsPerUnit float64, width, height int) *Camera {
	return &Camera{Position: pos, PixelsPerUnit: pixelsPerUnit, Width: width, Height: height}
}

// ScreenToWorld projects a screen pixel onto the world plane
func (c *Camera) ScreenToWorld(p Vec2) Vec3 {
	return Vec3{
		X: c.Position.X + (p.X-float64(c.Width)/2)/c.PixelsPerUnit,
		Y: c.Position.Y + (float64(c.Height)/2-p.Y)/c.PixelsPerUnit,
	}
}

// WorldToScreen is the inverse of ScreenToWorld
func (c *Camera) WorldToScreen(w Vec3) Vec2 {
	return Vec2{
		X: (w.X-c.Position.X)*c.PixelsPerUnit + float64(c.Width)/2,
		Y: float64(c.Height)/2 - (w.Y-c.Position.Y)*c.PixelsPerUnit,
	}
}

// CanvasMode selects how a canvas maps its pixels into the world
type CanvasMode int

// Canvas modes
const (
	// CanvasOverlay draws UI over the screen; pointer positions are projected
	// through the camera.
	CanvasOverlay CanvasMode = iota
	// CanvasWorldSpace places the canvas in the world with its own transform.
	CanvasWorldSpace
)

// Canvas is the UI surface widgets live on
type Canvas struct {
	Mode        CanvasMode
	Camera      *Camera // required for CanvasOverlay
	Origin      Vec3    // world position of canvas pixel (0,0), CanvasWorldSpace only
	UnitsPerPx  float64 // world units per canvas pixel, CanvasWorldSpace only
	ScaleFactor float64 // UI scale; pointer deltas are divided by it
}

// DeltaToCanvas converts a raw pointer delta into canvas pixels
func (c *Canvas) DeltaToCanvas(d Vec2) Vec2 {
	if c == nil || c.ScaleFactor == 0 {
		return d
	}
	return d.Scale(1 / c.ScaleFactor)
}

// ScreenToWorld resolves a screen position against a canvas. The result is
// always on the Z=0 plane.
func ScreenToWorld(p Vec2, canvas *Canvas) (Vec3, error) {
	if canvas == nil {
		return Vec3{}, ErrMissingCollaborator
	}
	switch canvas.Mode {
	case CanvasWorldSpace:
		if canvas.UnitsPerPx <= 0 {
			return Vec3{}, ErrMissingCollaborator
		}
		return Vec3{
			X: canvas.Origin.X + p.X*canvas.UnitsPerPx,
			Y: canvas.Origin.Y - p.Y*canvas.UnitsPerPx,
		}, nil
	default:
		if canvas.Camera == nil || canvas.Camera.PixelsPerUnit <= 0 {
			return Vec3{}, ErrMissingCollaborator
		}
		return canvas.Camera.ScreenToWorld(p).Flat(), nil
	}
}
