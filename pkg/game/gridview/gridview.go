// Package gridview draws cell outlines for a grid: full strength for
// authored cells and, optionally, faint outlines for empty ones.
package gridview

import (
	"image/color"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/renderer"
)

// EmptyAlpha scales the line alpha of cells without a tile
const EmptyAlpha = 0.3

// Options control what is drawn
type Options struct {
	ShowEmptyCells bool
	LineWidth      float64
	LineColor      color.RGBA
}

// Segment is one outline edge relative to the grid origin
type Segment struct {
	From, To world.Vec3
	Color    color.RGBA
}

// Visualizer caches outline segments per cell. Segments are stored
// relative to the grid origin so panning never invalidates them.
type Visualizer struct {
	grid *world.Grid
	opts Options

	segments map[world.CellIndex][]Segment
	order    []world.CellIndex

	builtVersion uint64
	builtPolicy  world.BoundsPolicy
	built        bool
}

// New creates a visualizer; segments are built on first Draw or Refresh
func New(grid *world.Grid, opts Options) *Visualizer {
	return &Visualizer{grid: grid, opts: opts, segments: make(map[world.CellIndex][]Segment)}
}

// Options returns the current options
func (v *Visualizer) Options() Options {
	return v.opts
}

// SetShowEmptyCells toggles empty outlines and rebuilds
func (v *Visualizer) SetShowEmptyCells(show bool) error {
	v.opts.ShowEmptyCells = show
	return v.Refresh()
}

// Refresh rebuilds every segment from the grid's current bounds and tiles
func (v *Visualizer) Refresh() error {
	segments := make(map[world.CellIndex][]Segment)
	var order []world.CellIndex
	layout := v.grid.Layout()

	err := v.grid.ForEachCell(func(c world.CellIndex, hasTile bool) {
		if !hasTile && !v.opts.ShowEmptyCells {
			return
		}
		col := v.opts.LineColor
		if !hasTile {
			col.A = uint8(float64(col.A) * EmptyAlpha)
		}
		pts := layout.Outline(c)
		edges := make([]Segment, 0, len(pts))
		for i := range pts {
			edges = append(edges, Segment{From: pts[i], To: pts[(i+1)%len(pts)], Color: col})
		}
		segments[c] = edges
		order = append(order, c)
	})
	if err != nil {
		return err
	}

	v.segments = segments
	v.order = order
	if tm := v.grid.Tilemap(); tm != nil {
		v.builtVersion = tm.Version()
	}
	v.builtPolicy = v.grid.Policy()
	v.built = true
	return nil
}

func (v *Visualizer) stale() bool {
	if !v.built {
		return true
	}
	if tm := v.grid.Tilemap(); tm != nil && tm.Version() != v.builtVersion {
		return true
	}
	return v.grid.Policy() != v.builtPolicy
}

// Draw queues every segment at the grid's current origin, rebuilding first
// when the tiles or bounds policy changed
func (v *Visualizer) Draw(out renderer.Renderer) error {
	if v.stale() {
		if err := v.Refresh(); err != nil {
			return err
		}
	}
	origin := v.grid.Origin()
	for _, c := range v.order {
		for _, s := range v.segments[c] {
			out.DrawLine(origin.Add(s.From), origin.Add(s.To), s.Color, v.opts.LineWidth)
		}
	}
	return nil
}

// Segments returns the cached edges of a cell
func (v *Visualizer) Segments(c world.CellIndex) []Segment {
	return v.segments[c]
}

// Cells returns how many cells have outlines
func (v *Visualizer) Cells() int {
	return len(v.order)
}
