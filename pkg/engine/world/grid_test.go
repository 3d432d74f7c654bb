package world

import (
	"errors"
	"testing"
)

// makeBoundGrid creates a rectangle grid bound to a tilemap sized to b
func makeBoundGrid(t *testing.T, b Bounds) (*Grid, *Tilemap) {
	t.Helper()
	tm := NewTilemap()
	tm.Resize(b)
	g := NewGrid(NewLayout(ShapeRectangle, 1, 1))
	g.Bind(tm)
	return g, tm
}

func TestGrid_NotInitialized(t *testing.T) {
	g := NewGrid(NewLayout(ShapeRectangle, 1, 1))
	if _, err := g.HasTile(Cell(0, 0)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("HasTile on unbound grid err = %v, want ErrNotInitialized", err)
	}
	if _, err := g.Bounds(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Bounds on unbound grid err = %v, want ErrNotInitialized", err)
	}
	if err := g.ForEachCell(func(CellIndex, bool) {}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ForEachCell on unbound grid err = %v, want ErrNotInitialized", err)
	}
	if msg := g.Validate(); msg == "" {
		t.Error("Validate() on unbound grid = \"\", want a description")
	}
}

func TestGrid_DerivedBoundsFollowContent(t *testing.T) {
	g, tm := makeBoundGrid(t, NewBounds(Cell(0, 0), Cell(4, 4)))

	b, err := g.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if b != NewBounds(Cell(0, 0), Cell(4, 4)) {
		t.Errorf("Bounds() = %v, want [0,0..4,4]", b)
	}

	tm.SetTile(Cell(7, -2), Tile{Name: "floor"})
	b, _ = g.Bounds()
	if want := NewBounds(Cell(0, -2), Cell(7, 4)); b != want {
		t.Errorf("after SetTile(7,-2) Bounds() = %v, want %v", b, want)
	}

	tm.CompressBounds()
	b, _ = g.Bounds()
	if want := NewBounds(Cell(7, -2), Cell(7, -2)); b != want {
		t.Errorf("after CompressBounds Bounds() = %v, want %v", b, want)
	}
}

func TestGrid_ManualBoundsIgnoreContent(t *testing.T) {
	g, tm := makeBoundGrid(t, NewBounds(Cell(0, 0), Cell(1, 1)))
	manual := ManualBounds{Rect: NewBounds(Cell(-5, -5), Cell(5, 5)), Offset: Vec3{X: 2}}
	g.SetPolicy(manual)
	tm.SetTile(Cell(40, 40), Tile{})
	b, err := g.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if b != manual.Rect {
		t.Errorf("Bounds() = %v, want %v", b, manual.Rect)
	}

	g.SetPolicy(nil)
	if _, ok := g.Policy().(DerivedBounds); !ok {
		t.Errorf("SetPolicy(nil) policy = %T, want DerivedBounds", g.Policy())
	}
}

func TestGrid_MoveOriginKeepsOccupancy(t *testing.T) {
	g, tm := makeBoundGrid(t, NewBounds(Cell(0, 0), Cell(4, 4)))
	tm.SetTile(Cell(2, 2), Tile{})
	before := g.CellCenterWorld(Cell(2, 2))

	g.MoveOrigin(Vec3{})
	if got := g.CellCenterWorld(Cell(2, 2)); got != before {
		t.Errorf("MoveOrigin(0) changed center to %v, want %v", got, before)
	}

	g.MoveOrigin(Vec3{X: 3, Y: -1})
	if got, want := g.CellCenterWorld(Cell(2, 2)), before.Add(Vec3{X: 3, Y: -1}); got != want {
		t.Errorf("CellCenterWorld after pan = %v, want %v", got, want)
	}
	if ok, _ := g.HasTile(Cell(2, 2)); !ok {
		t.Error("HasTile(2,2) after pan = false, want true")
	}
	if got := g.WorldToCell(g.CellCenterWorld(Cell(2, 2))); got != Cell(2, 2) {
		t.Errorf("round trip after pan = %v, want (2,2)", got)
	}
}

func TestTilemap_ClearTileKeepsRegion(t *testing.T) {
	tm := NewTilemap()
	tm.SetTile(Cell(1, 1), Tile{})
	tm.SetTile(Cell(3, 2), Tile{})
	v := tm.Version()
	if !tm.ClearTile(Cell(3, 2)) {
		t.Fatal("ClearTile(3,2) = false, want true")
	}
	if tm.Version() == v {
		t.Error("ClearTile did not bump version")
	}
	if tm.ClearTile(Cell(3, 2)) {
		t.Error("second ClearTile(3,2) = true, want false")
	}
	if got, want := tm.CellBounds(), NewBounds(Cell(1, 1), Cell(3, 2)); got != want {
		t.Errorf("CellBounds() = %v, want %v", got, want)
	}
}

func TestTilemap_ResizeDropsOutsideTiles(t *testing.T) {
	tm := NewTilemap()
	tm.SetTile(Cell(0, 0), Tile{})
	tm.SetTile(Cell(9, 9), Tile{})
	tm.Resize(NewBounds(Cell(0, 0), Cell(4, 4)))
	if tm.HasTile(Cell(9, 9)) {
		t.Error("HasTile(9,9) after Resize = true, want false")
	}
	if got := tm.Cells(); len(got) != 1 || got[0] != Cell(0, 0) {
		t.Errorf("Cells() = %v, want [(0,0)]", got)
	}
}

func TestBounds_Basics(t *testing.T) {
	b := NewBounds(Cell(4, 4), Cell(0, 0))
	if !b.Contains(Cell(0, 4)) || !b.Contains(Cell(4, 0)) {
		t.Error("Contains on inclusive edges = false, want true")
	}
	if b.Contains(Cell(5, 0)) {
		t.Error("Contains(5,0) = true, want false")
	}
	if w, h := b.Size(); w != 5 || h != 5 {
		t.Errorf("Size() = %d,%d, want 5,5", w, h)
	}
	if !EmptyBounds.IsEmpty() || EmptyBounds.Contains(Cell(0, 0)) {
		t.Error("EmptyBounds is not empty")
	}
	n := 0
	b.ForEach(func(CellIndex) { n++ })
	if n != 25 {
		t.Errorf("ForEach visited %d cells, want 25", n)
	}
}

func TestManualBounds_SplitOffset(t *testing.T) {
	m := ManualBounds{Offset: Vec3{X: 2.25, Y: -0.5}}
	if got := m.CellOffset(); got != Cell(2, -1) {
		t.Errorf("CellOffset() = %v, want (2,-1)", got)
	}
	if got := m.Remainder(); got != (Vec3{X: 0.25, Y: 0.5}) {
		t.Errorf("Remainder() = %v, want (0.25,0.5,0)", got)
	}
}

func TestDirection_StepAndOpposite(t *testing.T) {
	c := Cell(0, 0)
	for _, dir := range AllDirections() {
		if got := c.Step(dir).Step(dir.Opposite()); got != c {
			t.Errorf("Step(%v).Step(opposite) = %v, want %v", dir, got, c)
		}
	}
	if got := c.Step(North); got != Cell(0, 1) {
		t.Errorf("Step(North) = %v, want (0,1)", got)
	}
	if d, ok := ParseDirection("left"); !ok || d != West {
		t.Errorf("ParseDirection(left) = %v,%v, want West,true", d, ok)
	}
}
