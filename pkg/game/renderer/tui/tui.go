package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/terminal"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/gameplay"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// mapCellWidth is how many columns one cell takes in the printed map
const mapCellWidth = 2

// TUIRenderer prints the scene to a terminal. Visuals are retained and
// printed on RenderFrame.
type TUIRenderer struct {
	*renderer.Retained

	out io.Writer
}

// New creates a TUI renderer printing to stdout
func New() *TUIRenderer {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a TUI renderer printing to w
func NewWithWriter(w io.Writer) *TUIRenderer {
	return &TUIRenderer{Retained: renderer.NewRetained(), out: w}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	renderer.InitColors()
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if !terminal.IsInteractive() {
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// RenderFrame prints a complete frame: header, map, palette, effects and
// the messages pane
func (t *TUIRenderer) RenderFrame(s *state.Scene) {
	t.printHeader(s)
	t.printMap(s)
	t.printPalette(s)
	t.printKeys()
	t.printEffects(s)
	t.printMessagesPane(s)

	fmt.Fprint(t.out, "\n> ")
}

// printString prints a formatted string with markup expanded
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, renderer.FormatString(msg, a...))
}

func (t *TUIRenderer) printHeader(s *state.Scene) {
	bounds, err := s.Grid.Bounds()
	if err != nil {
		fmt.Fprintln(t.out, renderer.ColorDenied.Sprint(err.Error()))
		return
	}
	fmt.Fprint(t.out, renderer.ColorHeading.Sprintf("%v grid", s.Grid.Layout().Shape))
	t.printString("  origin CELL{%v}  policy ACTION{%s}", s.Grid.Origin(), gameplay.PolicyName(s.Grid.Policy()))
	fmt.Fprintf(t.out, "  bounds %s\n\n", renderer.ColorTile.Sprint(bounds.String()))
}

// ghosts maps each cell under a preview ghost to whether the drop there
// would be accepted
func (t *TUIRenderer) ghosts(s *state.Scene) map[world.CellIndex]bool {
	valid := s.Config.FeedbackConfig().ValidColor
	out := make(map[world.CellIndex]bool)
	for _, v := range t.Visuals() {
		if v.SortOrder != drag.GhostSortOrder {
			continue
		}
		out[s.Grid.WorldToCell(v.Position)] = v.Color == valid
	}
	return out
}

// renderCell returns the styled glyph for one cell
func (t *TUIRenderer) renderCell(s *state.Scene, c world.CellIndex, inBounds bool, ghosts map[world.CellIndex]bool) string {
	if ok, found := ghosts[c]; found {
		if ok {
			return renderer.ColorValid.Sprint(renderer.IconGhostOK)
		}
		return renderer.ColorDenied.Sprint(renderer.IconGhostNo)
	}
	if _, ok := s.ObstacleAt(c); ok {
		return renderer.ColorSubtle.Sprint(renderer.IconObject)
	}
	if _, ok := s.Spawner.At(c); ok {
		return renderer.ColorPlaced.Sprint(renderer.IconPlaced)
	}
	if s.Tiles.HasTile(c) {
		return renderer.ColorTile.Sprint(renderer.IconTile)
	}
	if inBounds && s.View.Options().ShowEmptyCells {
		return renderer.ColorCell.Sprint(renderer.IconEmpty)
	}
	return renderer.IconVoid
}

// printMap prints the union of the active bounds and the authored region,
// north at the top, centered in the terminal
func (t *TUIRenderer) printMap(s *state.Scene) {
	bounds, err := s.Grid.Bounds()
	if err != nil {
		return
	}
	view := bounds
	if region := s.Tiles.CellBounds(); !region.IsEmpty() {
		view = view.Encapsulate(region.Min).Encapsulate(region.Max)
	}
	if view.IsEmpty() {
		fmt.Fprintln(t.out, renderer.ColorSubtle.Sprint("  (empty grid)"))
		return
	}

	w, _ := view.Size()
	labelWidth := 5
	indent := (terminal.GetWidth() - labelWidth - w*mapCellWidth) / 2
	if indent < 0 {
		indent = 0
	}
	pad := strings.Repeat(" ", indent)

	ghosts := t.ghosts(s)
	for y := view.Max.Y; y >= view.Min.Y; y-- {
		fmt.Fprint(t.out, pad)
		fmt.Fprint(t.out, renderer.ColorSubtle.Sprintf("%4d ", y))
		for x := view.Min.X; x <= view.Max.X; x++ {
			c := world.Cell(x, y)
			fmt.Fprint(t.out, t.renderCell(s, c, bounds.Contains(c), ghosts))
			fmt.Fprint(t.out, strings.Repeat(" ", mapCellWidth-1))
		}
		fmt.Fprintln(t.out)
	}
	fmt.Fprint(t.out, pad)
	fmt.Fprint(t.out, renderer.ColorSubtle.Sprintf("     x=%d..%d\n\n", view.Min.X, view.Max.X))
}

// printPalette lists the widgets: the selected one is marked, dimmed ones
// are being dragged
func (t *TUIRenderer) printPalette(s *state.Scene) {
	fmt.Fprint(t.out, renderer.ColorSubtle.Sprint(gotext.Get("PALETTE")+": "))
	items := make([]string, 0, len(s.Widgets))
	for i, w := range s.Widgets {
		name := w.Widget().Item.Name
		style := renderer.ColorAction
		if ws, ok := t.Widget(w.Widget().ID); ok && !ws.Interactive {
			style = renderer.ColorSubtle
		}
		label := style.Sprint(name)
		if i == s.Selected {
			label = "[" + label + "]"
		}
		if p := w.Phase(); p != drag.PhaseIdle {
			label += renderer.ColorSubtle.Sprintf(" (%v)", p)
		}
		items = append(items, label)
	}
	fmt.Fprintln(t.out, strings.Join(items, renderer.ColorSubtle.Sprint(", ")))
	fmt.Fprintf(t.out, "%s %d\n", renderer.ColorSubtle.Sprint(gotext.Get("PLACED_COUNT")+":"), len(s.Spawner.Placed()))
}

// printKeys lists each action with the codes bound to it
func (t *TUIRenderer) printKeys() {
	byAction := engineinput.GetBindingsByAction()
	items := make([]string, 0, len(byAction))
	for a := engineinput.ActionPanNorth; a <= engineinput.ActionCycleWidget; a++ {
		codes, ok := byAction[a]
		if !ok {
			continue
		}
		items = append(items, renderer.ColorAction.Sprint(strings.Join(codes, "/"))+" "+engineinput.ActionName(a))
	}
	fmt.Fprintf(t.out, "%s %s\n", renderer.ColorSubtle.Sprint(gotext.Get("KEYS")+":"), strings.Join(items, renderer.ColorSubtle.Sprint(", ")))
}

// printEffects shows one-shot effects requested since the last frame
func (t *TUIRenderer) printEffects(s *state.Scene) {
	for _, e := range t.TakeEffects() {
		t.printString("* DENIED{EFFECT} ACTION{%s} CELL{%v}\n", e.Name, s.Grid.WorldToCell(e.At))
	}
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(s *state.Scene) {
	width := terminal.GetWidth()

	label := " " + gotext.Get("MESSAGES") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, renderer.ColorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)))

	if len(s.Messages) == 0 {
		fmt.Fprintln(t.out, renderer.ColorSubtle.Sprint("  (no messages)"))
	} else {
		for _, msg := range s.Messages {
			fmt.Fprintf(t.out, "  %s\n", renderer.FormatString("%s", msg))
		}
	}

	fmt.Fprintln(t.out, renderer.ColorSubtle.Sprint(strings.Repeat("─", width)))
}
