package world

import "fmt"

// Bounds is an inclusive rectangle of cell indices. Min > Max on either axis
// means empty.
type Bounds struct {
	Min CellIndex
	Max CellIndex
}

// EmptyBounds contains no cells
var EmptyBounds = Bounds{Min: CellIndex{X: 0, Y: 0}, Max: CellIndex{X: -1, Y: -1}}

// NewBounds creates bounds from two corners in any order
func NewBounds(a, b CellIndex) Bounds {
	return Bounds{
		Min: CellIndex{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: CellIndex{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// IsEmpty reports whether the bounds contain no cells
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Contains reports whether c lies inside the bounds, edges included
func (b Bounds) Contains(c CellIndex) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}

// Encapsulate returns the smallest bounds containing b and c
func (b Bounds) Encapsulate(c CellIndex) Bounds {
	if b.IsEmpty() {
		return Bounds{Min: c, Max: c}
	}
	return Bounds{
		Min: CellIndex{X: min(b.Min.X, c.X), Y: min(b.Min.Y, c.Y)},
		Max: CellIndex{X: max(b.Max.X, c.X), Y: max(b.Max.Y, c.Y)},
	}
}

// Size returns the number of cells along each axis
func (b Bounds) Size() (w, h int) {
	if b.IsEmpty() {
		return 0, 0
	}
	return b.Max.X - b.Min.X + 1, b.Max.Y - b.Min.Y + 1
}

// ForEach calls fn for every cell in row-major order, bottom row first
func (b Bounds) ForEach(fn func(c CellIndex)) {
	if b.IsEmpty() {
		return
	}
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			fn(CellIndex{X: x, Y: y})
		}
	}
}

func (b Bounds) String() string {
	if b.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%v..%v]", b.Min, b.Max)
}

// BoundsPolicy decides which rectangle the placement rules test against.
// The two implementations are DerivedBounds and ManualBounds; consumers
// switch on the concrete type.
type BoundsPolicy interface {
	boundsPolicy()
	String() string
}

// DerivedBounds uses the authored region of the bound tilemap
type DerivedBounds struct{}

func (DerivedBounds) boundsPolicy() {}

func (DerivedBounds) String() string { return "derived" }

// ManualBounds uses a configured rectangle. Offset is expressed in cells:
// its integer part shifts the index before the bounds test, its fractional
// remainder nudges snapped world positions along the cell axes (diamond
// edges on isometric layouts).
type ManualBounds struct {
	Rect   Bounds
	Offset Vec3
}

func (ManualBounds) boundsPolicy() {}

func (m ManualBounds) String() string {
	return fmt.Sprintf("manual %v offset %v", m.Rect, m.Offset)
}

// CellOffset returns the integer part of the offset
func (m ManualBounds) CellOffset() CellIndex {
	idx, _ := m.Offset.Split()
	return idx
}

// Remainder returns the fractional part of the offset, in cells
func (m ManualBounds) Remainder() Vec3 {
	_, frac := m.Offset.Split()
	return frac
}
