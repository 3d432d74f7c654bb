package drag

import (
	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/renderer"
)

// SortCounter hands out increasing draw orders for spawned objects and
// wraps back to 1 once it has handed out the ceiling
type SortCounter struct {
	value   int
	ceiling int
}

// NewSortCounter creates a counter that wraps after ceiling. A ceiling of
// zero or less never wraps.
func NewSortCounter(ceiling int) *SortCounter {
	return &SortCounter{ceiling: ceiling}
}

// Next returns the next draw order
func (c *SortCounter) Next() int {
	if c.ceiling > 0 && c.value >= c.ceiling {
		c.value = 0
	}
	c.value++
	return c.value
}

// Value returns the last order handed out, 0 before the first
func (c *SortCounter) Value() int {
	return c.value
}

// Colliders is where spawned objects register so later drops see them
type Colliders interface {
	Add(c spatial.Collider)
	Remove(id world.ObjectID) bool
}

// Placed is an object committed to the grid
type Placed struct {
	ID        world.ObjectID
	Item      world.Item
	Cell      world.CellIndex
	Position  world.Vec3 // snapped position, without the visual offset
	SortOrder int
}

// Spawner instantiates committed items. One spawner, and so one counter,
// is shared by every widget dropping onto the same grid.
type Spawner struct {
	Out            renderer.Renderer
	Colliders      Colliders
	Counter        *SortCounter
	Layer          spatial.Layer
	Radius         float64
	VerticalOffset float64

	placed []Placed
}

// NewSpawner creates a spawner registering colliders of radius on layer
func NewSpawner(out renderer.Renderer, colliders Colliders, counter *SortCounter, layer spatial.Layer, radius float64) *Spawner {
	return &Spawner{Out: out, Colliders: colliders, Counter: counter, Layer: layer, Radius: radius}
}

// Spawn places item at the snapped position of cell
func (s *Spawner) Spawn(item world.Item, cell world.CellIndex, at world.Vec3) Placed {
	order := s.Counter.Next()
	id := s.Out.Instantiate(renderer.Visual{
		Sprite:    item.Sprite,
		Position:  at.Add(world.Vec3{Y: s.VerticalOffset}),
		Color:     item.Color,
		SortOrder: order,
	})
	if s.Colliders != nil {
		s.Colliders.Add(spatial.Collider{Owner: id, Layer: s.Layer, Center: at, Radius: s.Radius})
	}
	p := Placed{ID: id, Item: item, Cell: cell, Position: at, SortOrder: order}
	s.placed = append(s.placed, p)
	return p
}

// Remove destroys a placed object and its collider
func (s *Spawner) Remove(id world.ObjectID) bool {
	for i, p := range s.placed {
		if p.ID != id {
			continue
		}
		s.Out.Destroy(id)
		if s.Colliders != nil {
			s.Colliders.Remove(id)
		}
		s.placed = append(s.placed[:i], s.placed[i+1:]...)
		return true
	}
	return false
}

// Placed returns the committed objects in spawn order
func (s *Spawner) Placed() []Placed {
	return s.placed
}

// At returns the object placed on cell, if any
func (s *Spawner) At(cell world.CellIndex) (Placed, bool) {
	for i := len(s.placed) - 1; i >= 0; i-- {
		if s.placed[i].Cell == cell {
			return s.placed[i], true
		}
	}
	return Placed{}, false
}

// Shift moves every placed object, visual and collider, by delta. Cells
// are grid relative and stay as they are.
func (s *Spawner) Shift(delta world.Vec3) {
	if delta.IsZero() {
		return
	}
	for i := range s.placed {
		p := &s.placed[i]
		p.Position = p.Position.Add(delta)
		s.Out.Update(p.ID, renderer.Visual{
			Sprite:    p.Item.Sprite,
			Position:  p.Position.Add(world.Vec3{Y: s.VerticalOffset}),
			Color:     p.Item.Color,
			SortOrder: p.SortOrder,
		})
		if s.Colliders != nil {
			s.Colliders.Add(spatial.Collider{Owner: p.ID, Layer: s.Layer, Center: p.Position, Radius: s.Radius})
		}
	}
}
