package gameplay

import (
	"errors"
	"log"
	"time"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/devtools"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/state"
)

// ProcessFrame applies one tick of input: intents first, then the pointer
// gesture, then time-driven feedback
func ProcessFrame(s *state.Scene, f engineinput.Frame) {
	for _, in := range f.Intents {
		ProcessIntent(s, in)
	}

	if active := s.ActiveDrag(); active != nil {
		if f.Held || f.Released {
			followPointer(s, active, f)
		}
		if f.Released {
			endDrag(s, active)
		}
	} else if f.Pressed {
		if w := WidgetAt(s, f.Pointer); w != nil {
			beginDrag(s, w, f.Pointer)
		}
	}

	Tick(s, f.Dt)
}

// ProcessIntent handles a single high-level intent
func ProcessIntent(s *state.Scene, in engineinput.Intent) {
	if dir, ok := in.Action.PanDirection(); ok {
		Pan(s, dir)
		return
	}

	switch in.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionQuit:
		s.Quit = true

	case engineinput.ActionCancelDrag:
		if active := s.ActiveDrag(); active != nil && active.Cancel() {
			logMessage(s, "GT{DRAG_CANCELLED}")
		}

	case engineinput.ActionDumpGrid:
		if err := devtools.CopyGridToClipboard(s); err != nil {
			log.Printf("grid dump: %v", err)
			logMessage(s, "DENIED{DUMP_FAILED}")
			return
		}
		logMessage(s, "GT{DUMP_COPIED}")

	case engineinput.ActionScreenshot:
		path, err := devtools.SaveScreenshotHTML(s, ".")
		if err != nil {
			log.Printf("screenshot: %v", err)
			logMessage(s, "DENIED{SCREENSHOT_FAILED}")
			return
		}
		log.Printf("screenshot saved to %s", path)
		logMessage(s, "GT{SCREENSHOT_SAVED} %s", path)

	case engineinput.ActionToggleEmpty:
		show := !s.View.Options().ShowEmptyCells
		if err := s.View.SetShowEmptyCells(show); err != nil {
			log.Printf("grid view: %v", err)
			return
		}
		if show {
			logMessage(s, "GT{EMPTY_CELLS_SHOWN}")
		} else {
			logMessage(s, "GT{EMPTY_CELLS_HIDDEN}")
		}

	case engineinput.ActionRefreshGrid:
		if err := s.View.Refresh(); err != nil {
			log.Printf("grid view: %v", err)
			return
		}
		logMessage(s, "GT{GRID_REFRESHED}")

	case engineinput.ActionTogglePolicy:
		TogglePolicy(s)

	case engineinput.ActionCycleWidget:
		s.CycleWidget()
		if w := s.SelectedWidget(); w != nil {
			logMessage(s, "GT{SELECTED} ACTION{%s}", w.Widget().Item.Name)
		}
	}
}

// Tick advances every widget's feedback by dt
func Tick(s *state.Scene, dt time.Duration) {
	if dt <= 0 {
		return
	}
	for _, w := range s.Widgets {
		w.Tick(dt)
	}
}

// WidgetAt returns the interactive palette widget under a screen position
func WidgetAt(s *state.Scene, p world.Vec2) *drag.Controller {
	const half = WidgetSize / 2
	for _, w := range s.Widgets {
		o := w.Widget().Origin
		if p.X >= o.X-half && p.X <= o.X+half && p.Y >= o.Y-half && p.Y <= o.Y+half {
			return w
		}
	}
	return nil
}

// TogglePolicy switches between derived bounds and the configured manual
// rectangle, and saves the choice
func TogglePolicy(s *state.Scene) {
	if _, manual := s.Grid.Policy().(world.ManualBounds); manual {
		s.Grid.SetPolicy(world.DerivedBounds{})
	} else {
		o := s.Config.Grid.Offset
		s.Grid.SetPolicy(world.ManualBounds{
			Rect:   s.Config.PlayfieldBounds(),
			Offset: world.Vec3{X: o[0], Y: o[1], Z: o[2]},
		})
	}
	name := PolicyName(s.Grid.Policy())
	log.Printf("bounds policy: %v", s.Grid.Policy())
	if err := s.Config.SetBoundsPolicy(name); err != nil {
		log.Printf("Warning: could not save bounds policy preference: %v", err)
	}
	logMessage(s, "GT{BOUNDS_POLICY} ACTION{%s}", name)
}

// PolicyName returns the short name shown for a bounds policy
func PolicyName(p world.BoundsPolicy) string {
	if _, ok := p.(world.ManualBounds); ok {
		return "manual"
	}
	return "derived"
}

func beginDrag(s *state.Scene, w *drag.Controller, p world.Vec2) {
	err := w.Begin(p)
	switch {
	case err == nil:
	case errors.Is(err, drag.ErrBusy):
		logMessage(s, "DENIED{WIDGET_BUSY}")
	default:
		log.Printf("%v", err)
		logMessage(s, "DENIED{DRAG_FAILED}")
	}
}

// followPointer moves the drag to the frame's pointer. A scaled canvas
// moves it by the pointer delta instead, divided by the scale factor.
func followPointer(s *state.Scene, w *drag.Controller, f engineinput.Frame) {
	if s.Canvas == nil || s.Canvas.ScaleFactor == 0 || s.Canvas.ScaleFactor == 1 {
		moveDrag(w, f.Pointer)
		return
	}
	if f.Delta == (world.Vec2{}) {
		return
	}
	if err := w.MoveBy(f.Delta); err != nil {
		log.Printf("%v", err)
	}
}

func moveDrag(w *drag.Controller, p world.Vec2) {
	if err := w.Move(p); err != nil {
		log.Printf("%v", err)
	}
}

func endDrag(s *state.Scene, w *drag.Controller) drag.Outcome {
	outcome, err := w.End()
	if err != nil {
		log.Printf("%v", err)
		logMessage(s, "DENIED{DRAG_FAILED}")
		return outcome
	}
	switch outcome {
	case drag.OutcomeCommitted:
		p := w.LastPlaced
		logMessage(s, "VALID{DROP_PLACED} ACTION{%s} CELL{%v}", p.Item.Name, p.Cell)
	case drag.OutcomeRejected:
		v := w.Session().Verdict
		logMessage(s, "DENIED{%s} CELL{%v}", v.Reason.Key(), v.Cell)
	}
	return outcome
}
