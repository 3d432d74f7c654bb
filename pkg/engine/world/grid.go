package world

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when the grid is queried before a tilemap
// has been bound. It is a configuration error, never retried.
var ErrNotInitialized = errors.New("world: grid has no tilemap bound")

// Grid is the occupancy view of a tilemap placed in the world.
// It owns the layout (and therefore the world origin) and the active bounds
// policy; content lives in the bound Tilemap.
type Grid struct {
	layout  Layout
	tilemap *Tilemap
	policy  BoundsPolicy

	derived        Bounds
	derivedVersion uint64
	derivedValid   bool
}

// NewGrid creates an unbound grid using the Derived bounds policy
func NewGrid(layout Layout) *Grid {
	return &Grid{layout: layout, policy: DerivedBounds{}}
}

// Bind attaches the tilemap the grid reads occupancy from
func (g *Grid) Bind(t *Tilemap) {
	g.tilemap = t
	g.derivedValid = false
}

// Tilemap returns the bound tilemap, or nil
func (g *Grid) Tilemap() *Tilemap {
	return g.tilemap
}

// Layout returns a copy of the grid's layout, origin included
func (g *Grid) Layout() Layout {
	return g.layout
}

// Policy returns the active bounds policy
func (g *Grid) Policy() BoundsPolicy {
	return g.policy
}

// SetPolicy switches the bounds policy. A nil policy selects DerivedBounds.
func (g *Grid) SetPolicy(p BoundsPolicy) {
	if p == nil {
		p = DerivedBounds{}
	}
	g.policy = p
	g.derivedValid = false
}

// WorldToCell maps a world position to the index of its containing cell
func (g *Grid) WorldToCell(pos Vec3) CellIndex {
	return g.layout.WorldToCell(pos)
}

// CellCenterWorld returns the world-space center of a cell
func (g *Grid) CellCenterWorld(c CellIndex) Vec3 {
	return g.layout.CellCenterWorld(c)
}

// SnappedPosition returns the center of the cell containing pos
func (g *Grid) SnappedPosition(pos Vec3) Vec3 {
	return g.layout.Snap(pos)
}

// Origin returns the world position of the grid origin
func (g *Grid) Origin() Vec3 {
	return g.layout.Origin
}

// MoveOrigin pans the whole grid by delta. Occupancy is unaffected.
func (g *Grid) MoveOrigin(delta Vec3) {
	if delta.IsZero() {
		return
	}
	g.layout.Origin = g.layout.Origin.Add(delta)
}

// HasTile reports whether content is authored at c
func (g *Grid) HasTile(c CellIndex) (bool, error) {
	if g.tilemap == nil {
		return false, ErrNotInitialized
	}
	return g.tilemap.HasTile(c), nil
}

// Bounds returns the rectangle of the active policy. Derived bounds are
// recomputed from the tilemap whenever its content version changes.
func (g *Grid) Bounds() (Bounds, error) {
	if g.tilemap == nil {
		return EmptyBounds, ErrNotInitialized
	}
	switch p := g.policy.(type) {
	case ManualBounds:
		return p.Rect, nil
	case DerivedBounds:
		if !g.derivedValid || g.derivedVersion != g.tilemap.Version() {
			g.derived = g.tilemap.CellBounds()
			g.derivedVersion = g.tilemap.Version()
			g.derivedValid = true
		}
		return g.derived, nil
	default:
		return EmptyBounds, fmt.Errorf("world: unsupported bounds policy %T", p)
	}
}

// ForEachCell calls fn for every cell inside the active bounds
func (g *Grid) ForEachCell(fn func(c CellIndex, hasTile bool)) error {
	b, err := g.Bounds()
	if err != nil {
		return err
	}
	b.ForEach(func(c CellIndex) {
		fn(c, g.tilemap.HasTile(c))
	})
	return nil
}

// Validate checks the grid for common issues and returns an error
// description or empty string if valid
func (g *Grid) Validate() string {
	if g.layout.CellSize.X <= 0 || g.layout.CellSize.Y <= 0 {
		return "Grid has invalid cell size"
	}
	if g.tilemap == nil {
		return "Grid has no tilemap bound"
	}
	if m, ok := g.policy.(ManualBounds); ok && m.Rect.IsEmpty() {
		return "Manual bounds are empty"
	}
	return ""
}
