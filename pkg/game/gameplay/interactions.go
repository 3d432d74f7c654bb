package gameplay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/state"
)

var (
	// ErrUnknownCommand is returned for a terminal command that is neither
	// a scene command nor a key binding
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are missing or malformed
	ErrUsage = errors.New("bad arguments")
	// ErrNoWidget is returned when the scene has no widget to drag
	ErrNoWidget = errors.New("no widget selected")
)

// CellScreen returns the screen position of a cell's center under the
// scene camera
func CellScreen(s *state.Scene, c world.CellIndex) world.Vec2 {
	return s.Camera.WorldToScreen(s.Grid.CellCenterWorld(c))
}

// ExecCommand runs one line of the terminal command language. Positions are
// cell indices; drags act on the selected widget.
//
//	down x y   pick up the selected widget over cell (x,y)
//	move x y   drag it over cell (x,y)
//	up         drop it
//	tick ms    advance feedback animations
//	pan dir    move the grid one cell (north, east, south, west)
//	tile x y   author a tile
//	clear x y  remove a tile
//	destroy    destroy the selected widget
//	bind a k   bind action id a (e.g. pan_north) to key k
//	quit       leave
//
// Anything else is looked up as a key binding.
func ExecCommand(s *state.Scene, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "down":
		c, err := cellArgs(cmd, args)
		if err != nil {
			return err
		}
		w := s.SelectedWidget()
		if w == nil {
			return ErrNoWidget
		}
		beginDrag(s, w, CellScreen(s, c))
		return nil

	case "move":
		c, err := cellArgs(cmd, args)
		if err != nil {
			return err
		}
		w := s.ActiveDrag()
		if w == nil {
			return drag.ErrNotDragging
		}
		moveDrag(w, CellScreen(s, c))
		return nil

	case "up":
		w := s.ActiveDrag()
		if w == nil {
			return drag.ErrNotDragging
		}
		endDrag(s, w)
		return nil

	case "tick":
		if len(args) != 1 {
			return fmt.Errorf("%w: tick ms", ErrUsage)
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms < 0 {
			return fmt.Errorf("%w: tick %q", ErrUsage, args[0])
		}
		Tick(s, time.Duration(ms)*time.Millisecond)
		return nil

	case "pan":
		if len(args) != 1 {
			return fmt.Errorf("%w: pan dir", ErrUsage)
		}
		dir, ok := world.ParseDirection(args[0])
		if !ok {
			return fmt.Errorf("%w: pan %q", ErrUsage, args[0])
		}
		Pan(s, dir)
		return nil

	case "tile":
		c, err := cellArgs(cmd, args)
		if err != nil {
			return err
		}
		s.Tiles.SetTile(c, world.Tile{Name: "floor", Sprite: "floor"})
		logMessage(s, "GT{TILE_SET} CELL{%v}", c)
		return nil

	case "clear":
		c, err := cellArgs(cmd, args)
		if err != nil {
			return err
		}
		if s.Tiles.ClearTile(c) {
			logMessage(s, "GT{TILE_CLEARED} CELL{%v}", c)
		}
		return nil

	case "destroy":
		w := s.SelectedWidget()
		if w == nil {
			return ErrNoWidget
		}
		w.Destroy()
		logMessage(s, "GT{WIDGET_DESTROYED} ACTION{%s}", w.Widget().Item.Name)
		return nil

	case "bind":
		if len(args) != 2 {
			return fmt.Errorf("%w: bind action key", ErrUsage)
		}
		action, ok := engineinput.ParseAction(args[0])
		if !ok {
			return fmt.Errorf("%w: bind %q", ErrUsage, args[0])
		}
		engineinput.SetSingleBinding(action, args[1])
		logMessage(s, "GT{KEY_BOUND} ACTION{%s} %s", args[0], args[1])
		return nil

	case "quit", "exit":
		s.Quit = true
		return nil
	}

	in := engineinput.MapToIntent(engineinput.DebouncedInput{Device: engineinput.DeviceTerminal, Code: cmd})
	if in.Action == engineinput.ActionNone {
		logMessage(s, "GT{UNKNOWN_COMMAND}")
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	ProcessIntent(s, in)
	return nil
}

func cellArgs(cmd string, args []string) (world.CellIndex, error) {
	if len(args) != 2 {
		return world.CellIndex{}, fmt.Errorf("%w: %s x y", ErrUsage, cmd)
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return world.CellIndex{}, fmt.Errorf("%w: %s x %q", ErrUsage, cmd, args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return world.CellIndex{}, fmt.Errorf("%w: %s y %q", ErrUsage, cmd, args[1])
	}
	return world.Cell(x, y), nil
}
