package world

import (
	"fmt"
	"math"
)

// Shape selects how cell indices map onto world space
type Shape int

// Cell shapes
const (
	// ShapeRectangle lays cells out on an axis-aligned lattice.
	ShapeRectangle Shape = iota
	// ShapeIsometric lays cells out as diamonds: moving +X goes right/up,
	// moving +Y goes left/up. Cell height is typically half the width.
	ShapeIsometric
)

// String returns the config name of a shape
func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeIsometric:
		return "isometric"
	default:
		return "unknown"
	}
}

// ParseShape is the inverse of Shape.String
func ParseShape(s string) (Shape, error) {
	switch s {
	case "rectangle", "rect", "":
		return ShapeRectangle, nil
	case "isometric", "iso", "diamond":
		return ShapeIsometric, nil
	default:
		return ShapeRectangle, fmt.Errorf("unknown grid shape %q", s)
	}
}

// Layout converts between world positions and cell indices.
// Positions are relative to the layout's Origin.
type Layout struct {
	Shape    Shape
	CellSize Vec3 // world units per cell; X and Y must be positive
	Origin   Vec3 // world position of cell (0,0)'s reference corner
}

// NewLayout creates a layout, panicking on a non-positive cell size
func NewLayout(shape Shape, width, height float64) Layout {
	if width <= 0 || height <= 0 {
		panic("cell size must be positive")
	}
	return Layout{Shape: shape, CellSize: Vec3{X: width, Y: height}}
}

// WorldToCell returns the index of the cell containing pos.
// Every finite input maps to some index, in or out of any bounds.
func (l Layout) WorldToCell(pos Vec3) CellIndex {
	local := pos.Sub(l.Origin)
	switch l.Shape {
	case ShapeIsometric:
		u := local.X / (l.CellSize.X / 2)
		v := local.Y / (l.CellSize.Y / 2)
		return CellIndex{
			X: int(math.Floor((u + v) / 2)),
			Y: int(math.Floor((v - u) / 2)),
		}
	default:
		return CellIndex{
			X: int(math.Floor(local.X / l.CellSize.X)),
			Y: int(math.Floor(local.Y / l.CellSize.Y)),
		}
	}
}

// CellCenterWorld returns the geometric center of a cell. Z is always 0.
func (l Layout) CellCenterWorld(c CellIndex) Vec3 {
	return l.cellToWorld(float64(c.X)+0.5, float64(c.Y)+0.5)
}

// CellPointWorld returns the point frac cells from the center of c, measured
// along the cell's own axes. On isometric layouts those axes are the
// diamond's edges, not the world X/Y axes.
func (l Layout) CellPointWorld(c CellIndex, frac Vec3) Vec3 {
	return l.cellToWorld(float64(c.X)+0.5+frac.X, float64(c.Y)+0.5+frac.Y)
}

// CellCornerWorld returns the reference corner of a cell (the point
// WorldToCell rounds down to).
func (l Layout) CellCornerWorld(c CellIndex) Vec3 {
	return l.cellToWorld(float64(c.X), float64(c.Y))
}

// cellToWorld maps fractional cell coordinates to world space
func (l Layout) cellToWorld(fx, fy float64) Vec3 {
	switch l.Shape {
	case ShapeIsometric:
		return Vec3{
			X: l.Origin.X + (fx-fy)*l.CellSize.X/2,
			Y: l.Origin.Y + (fx+fy)*l.CellSize.Y/2,
		}
	default:
		return Vec3{
			X: l.Origin.X + fx*l.CellSize.X,
			Y: l.Origin.Y + fy*l.CellSize.Y,
		}
	}
}

// Snap replaces pos with the center of its containing cell
func (l Layout) Snap(pos Vec3) Vec3 {
	return l.CellCenterWorld(l.WorldToCell(pos))
}

// Outline returns the corner points of a cell in drawing order, relative to
// the layout origin. Isometric cells yield a diamond (top, right, bottom, left).
func (l Layout) Outline(c CellIndex) [4]Vec3 {
	center := l.CellCenterWorld(c).Sub(l.Origin)
	hw, hh := l.CellSize.X/2, l.CellSize.Y/2
	if l.Shape == ShapeIsometric {
		return [4]Vec3{
			center.Add(Vec3{Y: hh}),
			center.Add(Vec3{X: hw}),
			center.Sub(Vec3{Y: hh}),
			center.Sub(Vec3{X: hw}),
		}
	}
	return [4]Vec3{
		center.Add(Vec3{X: -hw, Y: hh}),
		center.Add(Vec3{X: hw, Y: hh}),
		center.Add(Vec3{X: hw, Y: -hh}),
		center.Add(Vec3{X: -hw, Y: -hh}),
	}
}
