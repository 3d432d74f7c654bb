package gameplay

import (
	"fmt"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/state"
)

// PanStep is the world offset one pan in dir moves the grid: one cell
// width or height along the screen axis of the key pressed
func PanStep(s *state.Scene, dir world.Direction) world.Vec3 {
	dx, dy := dir.Delta()
	size := s.Grid.Layout().CellSize
	return world.Vec3{X: float64(dx) * size.X, Y: float64(dy) * size.Y}
}

// Pan moves the grid one step in dir. Obstacles and placed objects travel
// with it so every object keeps its cell.
func Pan(s *state.Scene, dir world.Direction) {
	delta := PanStep(s, dir)
	s.Grid.MoveOrigin(delta)

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		o.Visual.Position = o.Visual.Position.Add(delta)
		s.Out.Update(o.ID, o.Visual)
		s.Index.Move(o.ID, o.Visual.Position)
	}
	s.Spawner.Shift(delta)

	logMessage(s, "GT{GRID_MOVED_TO} CELL{%v}", s.Grid.Origin())
}

// logMessage adds a message to the scene's message log. Markup is kept as
// is; frontends expand or strip it when drawing.
func logMessage(s *state.Scene, msg string, a ...any) {
	s.AddMessage(fmt.Sprintf(msg, a...))
}
