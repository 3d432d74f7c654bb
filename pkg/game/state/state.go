// Package state holds everything a running placement scene is made of.
package state

import (
	"dropgrid/pkg/engine/audio"
	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/config"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/gridview"
	"dropgrid/pkg/game/placement"
	"dropgrid/pkg/game/renderer"
)

const maxMessages = 5

// Obstacle is a pre-placed blocker authored with the level
type Obstacle struct {
	ID     world.ObjectID
	Name   string
	Cell   world.CellIndex
	Visual renderer.Visual
}

// Scene is the grid, its colliders, the palette widgets dragging onto it
// and the message log
type Scene struct {
	Config *config.Config
	Out    renderer.Renderer
	Audio  audio.Out

	Grid      *world.Grid
	Tiles     *world.Tilemap
	Index     *spatial.Index
	Camera    *world.Camera
	Canvas    *world.Canvas
	Validator *placement.Validator
	Counter   *drag.SortCounter
	Spawner   *drag.Spawner
	View      *gridview.Visualizer

	Widgets   []*drag.Controller
	Selected  int
	Obstacles []Obstacle

	Messages []string

	Quit bool
}

// AddMessage adds a message to the scene's message log
func (s *Scene) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Scene) ClearMessages() {
	s.Messages = make([]string, 0)
}

// ActiveDrag returns the widget currently being dragged, or nil
func (s *Scene) ActiveDrag() *drag.Controller {
	for _, w := range s.Widgets {
		if w.Phase() == drag.PhaseDragging {
			return w
		}
	}
	return nil
}

// SelectedWidget returns the widget keyboard and terminal drags use
func (s *Scene) SelectedWidget() *drag.Controller {
	if len(s.Widgets) == 0 {
		return nil
	}
	if s.Selected < 0 || s.Selected >= len(s.Widgets) {
		s.Selected = 0
	}
	return s.Widgets[s.Selected]
}

// CycleWidget selects the next widget
func (s *Scene) CycleWidget() {
	if len(s.Widgets) == 0 {
		return
	}
	s.Selected = (s.Selected + 1) % len(s.Widgets)
}

// ObstacleAt returns the obstacle authored on cell
func (s *Scene) ObstacleAt(cell world.CellIndex) (Obstacle, bool) {
	for _, o := range s.Obstacles {
		if o.Cell == cell {
			return o, true
		}
	}
	return Obstacle{}, false
}
