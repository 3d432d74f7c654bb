package placement

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
)

// countingIndex wraps a spatial index and counts probes
type countingIndex struct {
	*spatial.Index
	probes int
}

func (c *countingIndex) OverlapsCircle(center world.Vec3, radius float64, mask spatial.LayerMask) mapset.Set[world.ObjectID] {
	c.probes++
	return c.Index.OverlapsCircle(center, radius, mask)
}

// makeScene builds a rectangle grid of unit cells with a tilemap sized to
// [0,4]x[0,4], a spatial index and a validator blocking on obstacles.
func makeScene(t *testing.T) (*world.Grid, *world.Tilemap, *countingIndex, *Validator) {
	t.Helper()
	tm := world.NewTilemap()
	tm.Resize(world.NewBounds(world.Cell(0, 0), world.Cell(4, 4)))
	grid := world.NewGrid(world.NewLayout(world.ShapeRectangle, 1, 1))
	grid.Bind(tm)
	ix := &countingIndex{Index: spatial.NewIndex(1)}
	v := NewValidator(grid, ix, spatial.Mask(spatial.LayerObstacle, spatial.LayerPlaced))
	return grid, tm, ix, v
}

func mustValidate(t *testing.T, v *Validator, pos world.Vec3, ignore ...world.ObjectID) Verdict {
	t.Helper()
	got, err := v.Validate(pos, ignore...)
	if err != nil {
		t.Fatalf("Validate(%v) err = %v", pos, err)
	}
	return got
}

func TestValidate_ScenarioA_EmptyInBoundsIsValid(t *testing.T) {
	grid, _, _, v := makeScene(t)
	pos := grid.CellCenterWorld(world.Cell(2, 2))
	got := mustValidate(t, v, pos)
	want := Valid(world.Cell(2, 2), pos)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate(cell 2,2) mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ScenarioB_OutOfBounds(t *testing.T) {
	grid, _, _, v := makeScene(t)
	got := mustValidate(t, v, grid.CellCenterWorld(world.Cell(5, 0)))
	if got.Valid || got.Reason != ReasonOutOfBounds {
		t.Errorf("Validate(cell 5,0) = %+v, want Invalid(OutOfBounds)", got)
	}
}

func TestValidate_ScenarioC_ManualBoundsWithOffset(t *testing.T) {
	grid, tm, ix, v := makeScene(t)
	grid.SetPolicy(world.ManualBounds{
		Rect:   world.NewBounds(world.Cell(-5, -5), world.Cell(5, 5)),
		Offset: world.Vec3{X: 2},
	})
	tm.SetTile(world.Cell(3, 0), world.Tile{Name: "floor"})
	center := grid.CellCenterWorld(world.Cell(3, 0))
	crate := world.NewObjectID()
	ix.Add(spatial.Collider{Owner: crate, Layer: spatial.LayerObstacle, Center: center, Radius: 0.1})

	// anywhere inside the cell maps to (3,0)
	pos := center.Add(world.Vec3{X: 0.3, Y: -0.2})
	got := mustValidate(t, v, pos)
	if got.Valid || got.Reason != ReasonBlocked {
		t.Fatalf("Validate with collider = %+v, want Invalid(Blocked)", got)
	}
	if got.Snapped != center {
		t.Errorf("Snapped = %v, want cell center %v", got.Snapped, center)
	}

	ix.Remove(crate)
	if got := mustValidate(t, v, pos); !got.Valid {
		t.Errorf("Validate after removing collider = %+v, want Valid", got)
	}
}

func TestValidate_ManualOffsetPushesOutOfBounds(t *testing.T) {
	grid, tm, _, v := makeScene(t)
	grid.SetPolicy(world.ManualBounds{
		Rect:   world.NewBounds(world.Cell(-5, -5), world.Cell(5, 5)),
		Offset: world.Vec3{X: 2},
	})
	tm.SetTile(world.Cell(4, 0), world.Tile{})
	// (4,0)+(2,0) = (6,0) is outside [-5,5] even though (4,0) is authored
	got := mustValidate(t, v, grid.CellCenterWorld(world.Cell(4, 0)))
	if got.Reason != ReasonOutOfBounds {
		t.Errorf("Validate(4,0) with offset = %+v, want OutOfBounds", got)
	}
	// (-6,0)+(2,0) = (-4,0) is inside although (-6,0) itself is not
	if got := mustValidate(t, v, grid.CellCenterWorld(world.Cell(-6, 0))); !got.Valid {
		t.Errorf("Validate(-6,0) with offset = %+v, want Valid", got)
	}
}

func TestValidate_FractionalOffsetNudgesSnap(t *testing.T) {
	grid, tm, ix, v := makeScene(t)
	grid.SetPolicy(world.ManualBounds{
		Rect:   world.NewBounds(world.Cell(-5, -5), world.Cell(5, 5)),
		Offset: world.Vec3{X: 0.5},
	})
	tm.SetTile(world.Cell(1, 1), world.Tile{})
	center := grid.CellCenterWorld(world.Cell(1, 1))
	// collider sits exactly on the plain center; the probe moved half a cell right
	ix.Add(spatial.Collider{Owner: world.NewObjectID(), Layer: spatial.LayerObstacle, Center: center, Radius: 0.05})

	got := mustValidate(t, v, center)
	if want := center.Add(world.Vec3{X: 0.5}); got.Snapped != want {
		t.Errorf("Snapped = %v, want %v", got.Snapped, want)
	}
	if !got.Valid {
		t.Errorf("Validate = %+v, want Valid (collider outside nudged probe)", got)
	}
}

func TestValidate_FractionalOffsetFollowsIsometricAxes(t *testing.T) {
	tm := world.NewTilemap()
	tm.Resize(world.NewBounds(world.Cell(0, 0), world.Cell(4, 4)))
	tm.SetTile(world.Cell(1, 1), world.Tile{})
	grid := world.NewGrid(world.NewLayout(world.ShapeIsometric, 1, 0.5))
	grid.Bind(tm)
	grid.SetPolicy(world.ManualBounds{
		Rect:   world.NewBounds(world.Cell(0, 0), world.Cell(4, 4)),
		Offset: world.Vec3{X: 0.5},
	})
	v := NewValidator(grid, spatial.NewIndex(1), spatial.AllLayers)

	center := grid.CellCenterWorld(world.Cell(1, 1))
	got := mustValidate(t, v, center)
	// half a cell along the cell X axis
	if want := center.Add(world.Vec3{X: 0.25, Y: 0.125}); got.Snapped != want {
		t.Errorf("Snapped = %v, want %v", got.Snapped, want)
	}
	if got.Cell != world.Cell(1, 1) {
		t.Errorf("Cell = %v, want (1,1)", got.Cell)
	}
}

func TestValidate_OutOfBoundsNeverProbes(t *testing.T) {
	grid, tm, ix, v := makeScene(t)
	tm.SetTile(world.Cell(2, 2), world.Tile{})
	grid.SetPolicy(world.ManualBounds{Rect: world.NewBounds(world.Cell(0, 0), world.Cell(1, 1))})
	ix.Add(spatial.Collider{Owner: world.NewObjectID(), Layer: spatial.LayerObstacle, Center: grid.CellCenterWorld(world.Cell(2, 2)), Radius: 0.1})

	for x := -3; x <= 8; x++ {
		for y := -3; y <= 8; y++ {
			c := world.Cell(x, y)
			if c.X >= 0 && c.X <= 1 && c.Y >= 0 && c.Y <= 1 {
				continue
			}
			got := mustValidate(t, v, grid.CellCenterWorld(c))
			if got.Reason != ReasonOutOfBounds {
				t.Fatalf("Validate(%v) = %+v, want OutOfBounds", c, got)
			}
		}
	}
	if ix.probes != 0 {
		t.Errorf("spatial probes = %d, want 0 for out-of-bounds positions", ix.probes)
	}
}

func TestValidate_EmptyCellSkipsCollisionCheck(t *testing.T) {
	grid, _, ix, v := makeScene(t)
	center := grid.CellCenterWorld(world.Cell(1, 3))
	ix.Add(spatial.Collider{Owner: world.NewObjectID(), Layer: spatial.LayerObstacle, Center: center, Radius: 0.5})

	got := mustValidate(t, v, center)
	if !got.Valid {
		t.Errorf("Validate on untiled cell with collider = %+v, want Valid", got)
	}
	if ix.probes != 0 {
		t.Errorf("spatial probes = %d, want 0 for untiled cell", ix.probes)
	}
}

func TestValidate_IgnoresDraggedItemAndGhost(t *testing.T) {
	grid, tm, ix, v := makeScene(t)
	tm.SetTile(world.Cell(0, 0), world.Tile{})
	center := grid.CellCenterWorld(world.Cell(0, 0))
	item := world.NewObjectID()
	ghost := world.NewObjectID()
	ix.Add(spatial.Collider{Owner: item, Layer: spatial.LayerPlaced, Center: center, Radius: 0.1})
	ix.Add(spatial.Collider{Owner: ghost, Layer: spatial.LayerPlaced, Center: center, Radius: 0.1})

	if got := mustValidate(t, v, center, item, ghost); !got.Valid {
		t.Errorf("Validate ignoring item+ghost = %+v, want Valid", got)
	}
	if got := mustValidate(t, v, center, item); got.Reason != ReasonBlocked {
		t.Errorf("Validate ignoring only item = %+v, want Blocked by ghost", got)
	}
}

func TestValidate_NonBlockingLayerIgnored(t *testing.T) {
	grid, tm, ix, v := makeScene(t)
	tm.SetTile(world.Cell(3, 3), world.Tile{})
	center := grid.CellCenterWorld(world.Cell(3, 3))
	ix.Add(spatial.Collider{Owner: world.NewObjectID(), Layer: spatial.LayerPreview, Center: center, Radius: 0.1})
	if got := mustValidate(t, v, center); !got.Valid {
		t.Errorf("Validate with preview-layer collider = %+v, want Valid", got)
	}
}

func TestValidate_IsometricLayout(t *testing.T) {
	tm := world.NewTilemap()
	tm.Resize(world.NewBounds(world.Cell(0, 0), world.Cell(4, 4)))
	grid := world.NewGrid(world.NewLayout(world.ShapeIsometric, 1, 0.5))
	grid.Bind(tm)
	v := NewValidator(grid, spatial.NewIndex(1), spatial.AllLayers)

	for x := 0; x <= 4; x++ {
		for y := 0; y <= 4; y++ {
			c := world.Cell(x, y)
			got := mustValidate(t, v, grid.CellCenterWorld(c))
			if !got.Valid || got.Cell != c {
				t.Errorf("Validate(center of %v) = %+v, want Valid at %v", c, got, c)
			}
		}
	}
}

func TestValidate_NotInitialized(t *testing.T) {
	grid := world.NewGrid(world.NewLayout(world.ShapeRectangle, 1, 1))
	v := NewValidator(grid, spatial.NewIndex(1), spatial.AllLayers)
	_, err := v.Validate(world.Vec3{})
	if !errors.Is(err, world.ErrNotInitialized) {
		t.Errorf("Validate on unbound grid err = %v, want ErrNotInitialized", err)
	}
}

func TestReason_Keys(t *testing.T) {
	for r, want := range map[Reason]string{
		ReasonNone:                "DROP_VALID",
		ReasonOutOfBounds:         "DROP_OUT_OF_BOUNDS",
		ReasonBlocked:             "DROP_BLOCKED",
		ReasonMissingCollaborator: "DROP_NO_CAMERA",
	} {
		if got := r.Key(); got != want {
			t.Errorf("Reason(%d).Key() = %q, want %q", r, got, want)
		}
	}
}

func TestVerdict_StringUsesCatalogue(t *testing.T) {
	gotext.Configure("../../../locales", "en_GB", "default")

	tests := []struct {
		name string
		v    Verdict
		want string
	}{
		{"valid", Valid(world.Cell(1, 2), world.Vec3{}), "valid drop at (1,2)"},
		{"blocked", Invalid(ReasonBlocked, world.Cell(3, 0), world.Vec3{}), "invalid drop at (3,0): Blocked"},
		{"out of bounds", Invalid(ReasonOutOfBounds, world.Cell(-1, 5), world.Vec3{}), "invalid drop at (-1,5): Out of bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
