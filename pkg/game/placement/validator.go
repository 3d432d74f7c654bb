package placement

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
)

// DefaultRadius is the overlap probe radius around a snapped position
const DefaultRadius = 0.2

// Occupancy is the read-only grid view the validator needs
type Occupancy interface {
	WorldToCell(pos world.Vec3) world.CellIndex
	CellCenterWorld(c world.CellIndex) world.Vec3
	HasTile(c world.CellIndex) (bool, error)
	Bounds() (world.Bounds, error)
	Policy() world.BoundsPolicy
	Layout() world.Layout
}

// SpatialIndex answers overlap queries against placed colliders
type SpatialIndex interface {
	OverlapsCircle(center world.Vec3, radius float64, mask spatial.LayerMask) mapset.Set[world.ObjectID]
}

// Validator classifies candidate drop positions
type Validator struct {
	Grid     Occupancy
	Index    SpatialIndex
	Blocking spatial.LayerMask
	Radius   float64
}

// NewValidator creates a validator probing DefaultRadius on the given layers
func NewValidator(grid Occupancy, index SpatialIndex, blocking spatial.LayerMask) *Validator {
	return &Validator{Grid: grid, Index: index, Blocking: blocking, Radius: DefaultRadius}
}

// Validate classifies pos. Colliders owned by an identity in ignore (the
// dragged item, its preview ghost) never block. The only error is a
// misconfigured grid; every classification outcome is in the Verdict.
//
// Checks run in a fixed order and stop at the first decision: bounds on the
// offset cell, then tile presence on the original cell (an untiled cell is
// always valid and never probed), then the collider probe.
func (v *Validator) Validate(pos world.Vec3, ignore ...world.ObjectID) (Verdict, error) {
	cell := v.Grid.WorldToCell(pos)

	bounds, err := v.Grid.Bounds()
	if err != nil {
		return Verdict{}, fmt.Errorf("validate %v: %w", pos, err)
	}

	testCell, remainder := cell, world.Vec3{}
	switch p := v.Grid.Policy().(type) {
	case world.ManualBounds:
		testCell = cell.Add(p.CellOffset())
		remainder = p.Remainder()
	case world.DerivedBounds:
	default:
		return Verdict{}, fmt.Errorf("validate %v: unsupported bounds policy %T", pos, p)
	}

	snapped := v.snap(cell, remainder)

	if !bounds.Contains(testCell) {
		return Invalid(ReasonOutOfBounds, cell, snapped), nil
	}

	hasTile, err := v.Grid.HasTile(cell)
	if err != nil {
		return Verdict{}, fmt.Errorf("validate %v: %w", pos, err)
	}
	if !hasTile {
		return Valid(cell, snapped), nil
	}

	if v.Index == nil {
		return Valid(cell, snapped), nil
	}
	radius := v.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	skip := world.NewIDSet(ignore...)
	blocked := false
	v.Index.OverlapsCircle(snapped, radius, v.Blocking).Each(func(id world.ObjectID) {
		if !skip.Has(id) {
			blocked = true
		}
	})
	if blocked {
		return Invalid(ReasonBlocked, cell, snapped), nil
	}
	return Valid(cell, snapped), nil
}

// snap returns the cell center nudged by the fractional offset, which is
// expressed in cells and follows the layout's cell axes
func (v *Validator) snap(cell world.CellIndex, remainder world.Vec3) world.Vec3 {
	if remainder.IsZero() {
		return v.Grid.CellCenterWorld(cell)
	}
	return v.Grid.Layout().CellPointWorld(cell, remainder)
}
