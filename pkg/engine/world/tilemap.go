package world

import "sort"

// Tile is authored content at a cell
type Tile struct {
	Name   string
	Sprite string
}

// Tilemap stores authored tiles. Its authored region behaves like a host
// tilemap's cell bounds: it grows to include every tile set, can be sized
// explicitly with Resize, and only shrinks on CompressBounds.
type Tilemap struct {
	tiles   map[CellIndex]Tile
	region  Bounds
	version uint64
}

// NewTilemap creates an empty tilemap with an empty authored region
func NewTilemap() *Tilemap {
	return &Tilemap{
		tiles:  make(map[CellIndex]Tile),
		region: EmptyBounds,
	}
}

// Version changes every time content or the authored region changes
func (t *Tilemap) Version() uint64 {
	return t.version
}

// HasTile reports whether a tile is authored at c
func (t *Tilemap) HasTile(c CellIndex) bool {
	_, ok := t.tiles[c]
	return ok
}

// GetTile returns the tile at c, if any
func (t *Tilemap) GetTile(c CellIndex) (Tile, bool) {
	tile, ok := t.tiles[c]
	return tile, ok
}

// SetTile authors a tile at c and grows the region to include it
func (t *Tilemap) SetTile(c CellIndex, tile Tile) {
	t.tiles[c] = tile
	t.region = t.region.Encapsulate(c)
	t.version++
}

// ClearTile removes the tile at c. The region is left as is.
func (t *Tilemap) ClearTile(c CellIndex) bool {
	if _, ok := t.tiles[c]; !ok {
		return false
	}
	delete(t.tiles, c)
	t.version++
	return true
}

// Resize sets the authored region explicitly. Tiles outside it are dropped.
func (t *Tilemap) Resize(b Bounds) {
	for c := range t.tiles {
		if !b.Contains(c) {
			delete(t.tiles, c)
		}
	}
	t.region = b
	t.version++
}

// CompressBounds shrinks the region to the tiles actually present
func (t *Tilemap) CompressBounds() {
	region := EmptyBounds
	for c := range t.tiles {
		region = region.Encapsulate(c)
	}
	t.region = region
	t.version++
}

// CellBounds returns the authored region
func (t *Tilemap) CellBounds() Bounds {
	return t.region
}

// Count returns the number of authored tiles
func (t *Tilemap) Count() int {
	return len(t.tiles)
}

// Cells returns authored cells sorted by Y then X
func (t *Tilemap) Cells() []CellIndex {
	cells := make([]CellIndex, 0, len(t.tiles))
	for c := range t.tiles {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}
