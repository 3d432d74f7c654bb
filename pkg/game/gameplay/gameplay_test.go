package gameplay

import (
	"errors"
	"strings"
	"testing"
	"time"

	"dropgrid/pkg/engine/audio"
	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/config"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// makeScene builds the default demo scene on a retained renderer: an 8x8
// isometric playfield with the corner x>=6,y<=1 left untiled and obstacles
// on (2,2), (5,3) and (1,5)
func makeScene(t *testing.T) (*state.Scene, *renderer.Retained) {
	t.Helper()
	out := renderer.NewRetained()
	s := BuildScene(config.Default(), out, audio.Discard{})
	if len(s.Widgets) == 0 {
		t.Fatal("scene has no widgets")
	}
	return s, out
}

func lastMessage(s *state.Scene) string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// dragTo runs a full pointer gesture from the first widget to cell c
func dragTo(s *state.Scene, c world.CellIndex) {
	origin := s.Widgets[0].Widget().Origin
	ProcessFrame(s, engineinput.Frame{Pointer: origin, Pressed: true, Held: true})
	ProcessFrame(s, engineinput.Frame{Pointer: CellScreen(s, c), Held: true})
	ProcessFrame(s, engineinput.Frame{Pointer: CellScreen(s, c), Released: true})
}

func TestBuildScene(t *testing.T) {
	s, _ := makeScene(t)

	if got := len(s.Widgets); got != 3 {
		t.Errorf("widgets = %d, want 3", got)
	}
	if got := len(s.Obstacles); got != 3 {
		t.Errorf("obstacles = %d, want 3", got)
	}
	if got := s.Tiles.Count(); got != 60 {
		t.Errorf("tiles = %d, want 60 (64 minus the empty corner)", got)
	}
	b, err := s.Grid.Bounds()
	if err != nil {
		t.Fatalf("Bounds() err = %v", err)
	}
	if want := world.NewBounds(world.Cell(0, 0), world.Cell(7, 7)); b != want {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
	if s.Index.Len() != 3 {
		t.Errorf("colliders = %d, want one per obstacle", s.Index.Len())
	}
	if !strings.Contains(lastMessage(s), "WELCOME") {
		t.Errorf("messages = %q, want the welcome line", s.Messages)
	}
}

func TestWidgetAt(t *testing.T) {
	s, _ := makeScene(t)
	w := s.Widgets[1]
	if got := WidgetAt(s, w.Widget().Origin.Add(world.Vec2{X: 10, Y: -10})); got != w {
		t.Errorf("WidgetAt(near second widget) = %v, want it", got)
	}
	if got := WidgetAt(s, world.Vec2{X: 900, Y: 600}); got != nil {
		t.Errorf("WidgetAt(empty space) = %v, want nil", got)
	}
}

func TestProcessFrame_DropCommits(t *testing.T) {
	s, out := makeScene(t)
	before := out.Len()

	dragTo(s, world.Cell(3, 4))

	placed, ok := s.Spawner.At(world.Cell(3, 4))
	if !ok {
		t.Fatal("nothing placed on (3,4)")
	}
	if placed.SortOrder != 1 {
		t.Errorf("SortOrder = %d, want 1", placed.SortOrder)
	}
	if got := out.Len(); got != before+1 {
		t.Errorf("live visuals = %d, want %d (spawned object only)", got, before+1)
	}
	if msg := lastMessage(s); !strings.Contains(msg, "DROP_PLACED") || !strings.Contains(msg, "(3,4)") {
		t.Errorf("last message = %q, want a placement on (3,4)", msg)
	}
}

func TestProcessFrame_DropOnObstacleRejectsThenFrees(t *testing.T) {
	s, out := makeScene(t)
	before := out.Len()

	dragTo(s, world.Cell(2, 2))

	w := s.Widgets[0]
	if w.Phase() != drag.PhaseRejecting {
		t.Fatalf("Phase() = %v, want rejecting", w.Phase())
	}
	if msg := lastMessage(s); !strings.Contains(msg, "DROP_BLOCKED") {
		t.Errorf("last message = %q, want blocked", msg)
	}
	if effects := out.TakeEffects(); len(effects) != 1 {
		t.Errorf("effects = %v, want one failure effect", effects)
	}

	ProcessFrame(s, engineinput.Frame{Dt: time.Second})

	if w.Phase() != drag.PhaseIdle {
		t.Errorf("Phase() after animation = %v, want idle", w.Phase())
	}
	if out.Len() != before {
		t.Errorf("live visuals = %d, want %d", out.Len(), before)
	}
	if _, ok := s.Spawner.At(world.Cell(2, 2)); ok {
		t.Error("rejected drop placed an object")
	}
}

func TestProcessFrame_OutsideBounds(t *testing.T) {
	s, _ := makeScene(t)
	dragTo(s, world.Cell(9, 9))
	if msg := lastMessage(s); !strings.Contains(msg, "DROP_OUT_OF_BOUNDS") {
		t.Errorf("last message = %q, want out of bounds", msg)
	}
}

func TestProcessFrame_EmptyCellAlwaysValid(t *testing.T) {
	s, _ := makeScene(t)
	dragTo(s, world.Cell(7, 0))
	dragTo(s, world.Cell(7, 0))
	if got := len(s.Spawner.Placed()); got != 2 {
		t.Errorf("placed on untiled cell = %d, want 2 (no collider probe)", got)
	}
}

func TestPan_CarriesObjectsWithGrid(t *testing.T) {
	s, out := makeScene(t)
	dragTo(s, world.Cell(3, 4))
	before := s.Grid.Origin()

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionPanEast})

	if want := before.Add(world.Vec3{X: 1}); s.Grid.Origin() != want {
		t.Errorf("origin after pan = %v, want %v", s.Grid.Origin(), want)
	}
	o := s.Obstacles[0]
	if c, _ := s.Index.Get(o.ID); c.Center != s.Grid.CellCenterWorld(o.Cell) {
		t.Errorf("obstacle collider at %v, want center of %v", c.Center, o.Cell)
	}
	if v, _ := out.Visual(o.ID); v.Position != o.Visual.Position {
		t.Errorf("obstacle visual at %v, want %v", v.Position, o.Visual.Position)
	}

	dragTo(s, o.Cell)
	if msg := lastMessage(s); !strings.Contains(msg, "DROP_BLOCKED") {
		t.Errorf("drop on obstacle after pan = %q, want blocked", msg)
	}
}

func TestProcessIntent_Toggles(t *testing.T) {
	s, _ := makeScene(t)

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionTogglePolicy})
	if _, ok := s.Grid.Policy().(world.ManualBounds); !ok {
		t.Errorf("policy after toggle = %v, want manual", s.Grid.Policy())
	}
	if s.Config.Grid.Bounds != "manual" {
		t.Errorf("saved bounds = %q, want manual", s.Config.Grid.Bounds)
	}
	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionTogglePolicy})
	if _, ok := s.Grid.Policy().(world.DerivedBounds); !ok {
		t.Errorf("policy after second toggle = %v, want derived", s.Grid.Policy())
	}

	shown := s.View.Options().ShowEmptyCells
	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionToggleEmpty})
	if s.View.Options().ShowEmptyCells == shown {
		t.Error("toggle empty cells had no effect")
	}

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionCycleWidget})
	if s.Selected != 1 {
		t.Errorf("Selected after cycle = %d, want 1", s.Selected)
	}
}

func TestProcessIntent_CancelDrag(t *testing.T) {
	s, out := makeScene(t)
	before := out.Len()
	ProcessFrame(s, engineinput.Frame{Pointer: s.Widgets[0].Widget().Origin, Pressed: true, Held: true})
	if s.ActiveDrag() == nil {
		t.Fatal("press on widget did not start a drag")
	}

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionCancelDrag})

	if s.ActiveDrag() != nil || out.Len() != before {
		t.Errorf("after cancel: active %v, %d visuals; want no drag and %d visuals", s.ActiveDrag(), out.Len(), before)
	}
}

func TestExecCommand_Script(t *testing.T) {
	s, _ := makeScene(t)
	script := []string{
		"down 0 0",
		"move 4 4",
		"up",
		"down 0 0",
		"move 5 3",
		"up",
		"tick 600",
		"pan north",
		"clear 4 4",
		"tile 9 9",
		"b",
	}
	for _, line := range script {
		if err := ExecCommand(s, line); err != nil {
			t.Fatalf("ExecCommand(%q) err = %v", line, err)
		}
	}

	if got := len(s.Spawner.Placed()); got != 1 {
		t.Errorf("placed = %d, want 1 (second drop hit an obstacle)", got)
	}
	if s.Widgets[0].Phase() != drag.PhaseIdle {
		t.Errorf("Phase() after tick = %v, want idle", s.Widgets[0].Phase())
	}
	if s.Tiles.HasTile(world.Cell(4, 4)) || !s.Tiles.HasTile(world.Cell(9, 9)) {
		t.Error("tile/clear commands did not author the tilemap")
	}
	if _, ok := s.Grid.Policy().(world.ManualBounds); !ok {
		t.Errorf("key binding b did not toggle the policy, got %v", s.Grid.Policy())
	}
}

func TestExecCommand_Errors(t *testing.T) {
	s, _ := makeScene(t)
	tests := []struct {
		line string
		want error
	}{
		{"tick", ErrUsage},
		{"tick soon", ErrUsage},
		{"down 1", ErrUsage},
		{"move x 1", ErrUsage},
		{"pan up-ish", ErrUsage},
		{"bind pan_north", ErrUsage},
		{"bind fly w", ErrUsage},
		{"up", drag.ErrNotDragging},
		{"dance", ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if err := ExecCommand(s, tt.line); !errors.Is(err, tt.want) {
				t.Errorf("ExecCommand(%q) err = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
	if err := ExecCommand(s, "   "); err != nil {
		t.Errorf("blank line err = %v, want nil", err)
	}
}

func TestExecCommand_DestroyMidDrag(t *testing.T) {
	s, out := makeScene(t)
	before := out.Len()
	ExecCommand(s, "down 0 0")
	ExecCommand(s, "move 3 3")

	if err := ExecCommand(s, "destroy"); err != nil {
		t.Fatalf("destroy err = %v", err)
	}
	if out.Len() != before {
		t.Errorf("live visuals after destroy = %d, want %d", out.Len(), before)
	}
	if s.ActiveDrag() != nil {
		t.Error("destroyed widget still dragging")
	}
	ExecCommand(s, "down 0 0")
	if msg := lastMessage(s); !strings.Contains(msg, "DRAG_FAILED") {
		t.Errorf("drag of destroyed widget logged %q, want failure", msg)
	}
}

func TestExecCommand_Bind(t *testing.T) {
	s, _ := makeScene(t)
	t.Cleanup(func() { engineinput.SetSingleBinding(engineinput.ActionTogglePolicy, "b") })

	if err := ExecCommand(s, "bind toggle_policy p"); err != nil {
		t.Fatalf("bind err = %v", err)
	}
	if err := ExecCommand(s, "p"); err != nil {
		t.Fatalf("rebound key err = %v", err)
	}
	if _, ok := s.Grid.Policy().(world.ManualBounds); !ok {
		t.Errorf("policy after rebound key = %v, want manual", s.Grid.Policy())
	}
	if err := ExecCommand(s, "b"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("old key err = %v, want ErrUnknownCommand", err)
	}
}

func TestQuit(t *testing.T) {
	s, _ := makeScene(t)
	ExecCommand(s, "quit")
	if !s.Quit {
		t.Error("quit command did not set Quit")
	}
}

func TestBuildScene_NilConfigUsesCurrent(t *testing.T) {
	prev := config.Current()
	t.Cleanup(func() { config.SetCurrent(prev) })

	cfg := config.Default()
	cfg.Grid.Bounds = "manual"
	cfg.View.UIScale = 2
	config.SetCurrent(cfg)

	s := BuildScene(nil, renderer.NewRetained(), nil)
	if s.Config != cfg {
		t.Error("BuildScene(nil) did not use config.Current()")
	}
	if _, ok := s.Grid.Policy().(world.ManualBounds); !ok {
		t.Errorf("Policy() = %v, want manual", s.Grid.Policy())
	}
	if got := s.Canvas.ScaleFactor; got != 2 {
		t.Errorf("Canvas.ScaleFactor = %v, want 2", got)
	}
}

func TestProcessFrame_ScaledCanvasDragsByDelta(t *testing.T) {
	s, _ := makeScene(t)
	s.Canvas.ScaleFactor = 2
	w := s.Widgets[0]
	origin := w.Widget().Origin

	ProcessFrame(s, engineinput.Frame{Pointer: origin, Pressed: true, Held: true})
	if s.ActiveDrag() != w {
		t.Fatal("press on widget did not start a drag")
	}

	delta := world.Vec2{X: 40, Y: 20}
	ProcessFrame(s, engineinput.Frame{Pointer: origin.Add(delta), Delta: delta, Held: true})
	if got, want := w.Session().Screen, origin.Add(world.Vec2{X: 20, Y: 10}); got != want {
		t.Errorf("Screen after scaled move = %v, want %v", got, want)
	}

	// the pointer position alone does not move a scaled drag
	ProcessFrame(s, engineinput.Frame{Pointer: origin, Held: true})
	if got, want := w.Session().Screen, origin.Add(world.Vec2{X: 20, Y: 10}); got != want {
		t.Errorf("Screen after zero-delta frame = %v, want %v", got, want)
	}
}
