package renderer

import (
	"image/color"

	"dropgrid/pkg/engine/world"
)

// Visual is a positioned sprite the host draws in world space
type Visual struct {
	Sprite    string
	Position  world.Vec3
	Color     color.RGBA
	SortOrder int
	Scale     float64 // 0 means 1
}

// Widget is the screen-space state of a draggable UI source
type Widget struct {
	Position    world.Vec2
	Alpha       float64
	Interactive bool
}

// Renderer defines the interface the placement core drives.
// Implementations include the Ebiten window and the terminal renderer.
type Renderer interface {
	// DrawLine queues a colored line segment in world space for this frame
	DrawLine(from, to world.Vec3, col color.RGBA, width float64)

	// Instantiate creates a persistent visual and returns its handle
	Instantiate(v Visual) world.ObjectID

	// Update replaces the state of an existing visual
	Update(h world.ObjectID, v Visual)

	// Destroy releases a visual; unknown handles are ignored
	Destroy(h world.ObjectID)

	// SetWidget sets a widget's screen position, transparency and interactivity
	SetWidget(id world.ObjectID, w Widget)

	// PlayEffect spawns a one-shot effect (particles, flash) at a world position
	PlayEffect(name string, at world.Vec3)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}
