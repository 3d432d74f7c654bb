// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/state"
)

// Map symbols
const (
	SymbolEmpty    = '.'
	SymbolTile     = '#'
	SymbolObstacle = 'X'
	SymbolPlaced   = 'P'
	SymbolOutside  = ' '
)

// cellSymbol returns the single-character symbol for a cell
func cellSymbol(s *state.Scene, c world.CellIndex, inBounds bool) rune {
	if _, ok := s.ObstacleAt(c); ok {
		return SymbolObstacle
	}
	if _, ok := s.Spawner.At(c); ok {
		return SymbolPlaced
	}
	if s.Tiles.HasTile(c) {
		return SymbolTile
	}
	if inBounds {
		return SymbolEmpty
	}
	return SymbolOutside
}

// DumpGrid returns a text dump of the scene: metadata, legend, the map
// with north at the top, and the placed objects.
func DumpGrid(s *state.Scene) (string, error) {
	if s.Grid == nil || s.Tiles == nil {
		return "", world.ErrNotInitialized
	}
	bounds, err := s.Grid.Bounds()
	if err != nil {
		return "", err
	}
	layout := s.Grid.Layout()

	// draw the union of the active bounds and the authored region so cells
	// outside manual bounds are still visible
	view := bounds
	region := s.Tiles.CellBounds()
	if !region.IsEmpty() {
		view = view.Encapsulate(region.Min).Encapsulate(region.Max)
	}

	var b strings.Builder
	fmt.Fprintln(&b, "=== GRID DUMP ===")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "--- Metadata ---")
	fmt.Fprintf(&b, "shape: %v\n", layout.Shape)
	fmt.Fprintf(&b, "cell_size: %gx%g\n", layout.CellSize.X, layout.CellSize.Y)
	fmt.Fprintf(&b, "origin: %v\n", layout.Origin)
	fmt.Fprintf(&b, "policy: %v\n", s.Grid.Policy())
	fmt.Fprintf(&b, "bounds: %v\n", bounds)
	fmt.Fprintf(&b, "tiles: %d\n", s.Tiles.Count())
	fmt.Fprintf(&b, "colliders: %d\n", s.Index.Len())
	fmt.Fprintf(&b, "sort_order: %d\n", s.Counter.Value())
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "--- Legend ---")
	fmt.Fprintf(&b, "%c empty  %c tile  %c obstacle  %c placed\n", SymbolEmpty, SymbolTile, SymbolObstacle, SymbolPlaced)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "--- Map (y descending) ---")
	if !view.IsEmpty() {
		for y := view.Max.Y; y >= view.Min.Y; y-- {
			fmt.Fprintf(&b, "%4d ", y)
			for x := view.Min.X; x <= view.Max.X; x++ {
				c := world.Cell(x, y)
				b.WriteRune(cellSymbol(s, c, bounds.Contains(c)))
			}
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "     x=%d..%d\n", view.Min.X, view.Max.X)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "--- Placed ---")
	placed := s.Spawner.Placed()
	if len(placed) == 0 {
		fmt.Fprintln(&b, "(none)")
	}
	for _, p := range placed {
		fmt.Fprintf(&b, "%s %-12s cell=%v order=%d\n", p.ID.Short(), p.Item.Name, p.Cell, p.SortOrder)
	}
	return b.String(), nil
}

// CopyGridToClipboard puts DumpGrid's output on the system clipboard
func CopyGridToClipboard(s *state.Scene) error {
	dump, err := DumpGrid(s)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(dump); err != nil {
		return fmt.Errorf("copy grid dump: %w", err)
	}
	return nil
}
