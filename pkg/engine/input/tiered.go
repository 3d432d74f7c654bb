package input

import (
	"sort"
	"time"

	"github.com/leonelquinteros/gotext"

	"dropgrid/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent.
type Action int

const (
	ActionNone Action = iota

	// Grid panning
	ActionPanNorth
	ActionPanSouth
	ActionPanWest
	ActionPanEast

	// Meta / UI
	ActionQuit
	ActionCancelDrag
	ActionDumpGrid     // Copy a text dump of the grid (F8)
	ActionScreenshot   // Save an HTML snapshot of the grid (F12)
	ActionToggleEmpty  // Show/hide empty cell outlines
	ActionRefreshGrid  // Rebuild grid lines
	ActionTogglePolicy // Switch Derived/Manual bounds
	ActionCycleWidget  // Select the next palette widget
)

// Intent is the 4th‑layer, high‑level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "f8").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// Debouncer drops repeats of the same code arriving within Window
type Debouncer struct {
	Window time.Duration
	last   map[string]time.Time
}

// NewDebouncer creates a debouncer with the given repeat window
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window, last: make(map[string]time.Time)}
}

// Accept converts a raw event, reporting false when it is a repeat
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	if prev, ok := d.last[raw.Code]; ok && raw.Timestamp.Sub(prev) < d.Window {
		return DebouncedInput{}, false
	}
	d.last[raw.Code] = raw.Timestamp
	return DebouncedInput{Device: raw.Device, Code: raw.Code}, true
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"arrow_up":    ActionPanNorth,
	"north":       ActionPanNorth,
	"k":           ActionPanNorth,
	"arrow_down":  ActionPanSouth,
	"south":       ActionPanSouth,
	"j":           ActionPanSouth,
	"arrow_left":  ActionPanWest,
	"west":        ActionPanWest,
	"h":           ActionPanWest,
	"arrow_right": ActionPanEast,
	"east":        ActionPanEast,
	"l":           ActionPanEast,

	"quit":   ActionQuit,
	"q":      ActionQuit,
	"escape": ActionCancelDrag,

	"f8":   ActionDumpGrid,
	"dump": ActionDumpGrid,
	"f12":  ActionScreenshot,
	"shot": ActionScreenshot,
	"g":    ActionToggleEmpty,
	"r":    ActionRefreshGrid,
	"f5":   ActionRefreshGrid,
	"b":    ActionTogglePolicy,
	"tab":  ActionCycleWidget,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// PanDirection returns the grid direction of a pan action
func (a Action) PanDirection() (world.Direction, bool) {
	switch a {
	case ActionPanNorth:
		return world.North, true
	case ActionPanSouth:
		return world.South, true
	case ActionPanWest:
		return world.West, true
	case ActionPanEast:
		return world.East, true
	default:
		return 0, false
	}
}

// actionIDs are the stable names used to rebind actions
var actionIDs = map[string]Action{
	"pan_north":     ActionPanNorth,
	"pan_south":     ActionPanSouth,
	"pan_west":      ActionPanWest,
	"pan_east":      ActionPanEast,
	"quit":          ActionQuit,
	"cancel_drag":   ActionCancelDrag,
	"dump_grid":     ActionDumpGrid,
	"screenshot":    ActionScreenshot,
	"toggle_empty":  ActionToggleEmpty,
	"refresh_grid":  ActionRefreshGrid,
	"toggle_policy": ActionTogglePolicy,
	"cycle_widget":  ActionCycleWidget,
}

// ParseAction looks up an action by its id, e.g. "pan_north"
func ParseAction(id string) (Action, bool) {
	a, ok := actionIDs[id]
	return a, ok
}

// ActionName returns a translated, human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPanNorth:
		return gotext.Get("ACTION_PAN_NORTH")
	case ActionPanSouth:
		return gotext.Get("ACTION_PAN_SOUTH")
	case ActionPanWest:
		return gotext.Get("ACTION_PAN_WEST")
	case ActionPanEast:
		return gotext.Get("ACTION_PAN_EAST")
	case ActionQuit:
		return gotext.Get("ACTION_QUIT")
	case ActionCancelDrag:
		return gotext.Get("ACTION_CANCEL_DRAG")
	case ActionDumpGrid:
		return gotext.Get("ACTION_DUMP_GRID")
	case ActionScreenshot:
		return gotext.Get("ACTION_SCREENSHOT")
	case ActionToggleEmpty:
		return gotext.Get("ACTION_TOGGLE_EMPTY")
	case ActionRefreshGrid:
		return gotext.Get("ACTION_REFRESH_GRID")
	case ActionTogglePolicy:
		return gotext.Get("ACTION_TOGGLE_POLICY")
	case ActionCycleWidget:
		return gotext.Get("ACTION_CYCLE_WIDGET")
	default:
		return gotext.Get("ACTION_NONE")
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the help overlay doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. Arrow keys are reserved.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}

func reserved(code string) bool {
	switch code {
	case "arrow_up", "arrow_down", "arrow_left", "arrow_right":
		return true
	}
	return false
}

// Frame is one tick of input: where the pointer is, how its primary
// button changed, and which intents fired
type Frame struct {
	Pointer  world.Vec2
	Delta    world.Vec2
	Pressed  bool // primary button went down this tick
	Released bool // primary button went up this tick
	Held     bool
	Intents  []Intent
	Dt       time.Duration
}

// Clock measures the real time between frames
type Clock struct {
	last time.Time
}

// Step returns the wall time since the previous Step. The first step and a
// clock that went backwards yield zero.
func (c *Clock) Step(now time.Time) time.Duration {
	prev := c.last
	c.last = now
	if prev.IsZero() || now.Before(prev) {
		return 0
	}
	return now.Sub(prev)
}

// Has reports whether the frame carries an intent for action
func (f Frame) Has(action Action) bool {
	for _, in := range f.Intents {
		if in.Action == action {
			return true
		}
	}
	return false
}

// Source yields one Frame per tick
type Source interface {
	Poll() Frame
}
