// Package spatial provides a bucketed collider index answering the overlap
// queries placement rules need.
package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"dropgrid/pkg/engine/world"
)

// Layer is a collision category bit
type Layer uint32

// LayerMask selects one or more layers
type LayerMask uint32

// Built-in layers
const (
	LayerDefault Layer = 1 << iota
	LayerObstacle
	LayerPlaced
	LayerPreview
)

var layerNames = map[string]Layer{
	"default":  LayerDefault,
	"obstacle": LayerObstacle,
	"placed":   LayerPlaced,
	"preview":  LayerPreview,
}

// ParseLayer looks a layer up by name
func ParseLayer(name string) (Layer, bool) {
	l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

func (l Layer) String() string {
	for name, v := range layerNames {
		if v == l {
			return name
		}
	}
	return fmt.Sprintf("layer(%d)", uint32(l))
}

// AllLayers matches every layer
const AllLayers LayerMask = math.MaxUint32

// Mask builds a mask from layers
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= LayerMask(l)
	}
	return m
}

// Has reports whether l is selected by the mask
func (m LayerMask) Has(l Layer) bool {
	return m&LayerMask(l) != 0
}

// Collider is a 2D shape owned by an object. A zero HalfExtents makes it a
// circle of Radius; otherwise it is an axis-aligned box.
type Collider struct {
	Owner       world.ObjectID
	Layer       Layer
	Center      world.Vec3
	Radius      float64
	HalfExtents world.Vec2
}

// reach bounds the collider's extent from its center
func (c Collider) reach() float64 {
	if c.HalfExtents.X != 0 || c.HalfExtents.Y != 0 {
		return math.Hypot(c.HalfExtents.X, c.HalfExtents.Y)
	}
	return c.Radius
}

// overlapsCircle tests the collider's shape against a circle
func (c Collider) overlapsCircle(center world.Vec3, radius float64) bool {
	if c.HalfExtents.X != 0 || c.HalfExtents.Y != 0 {
		// closest point on the box to the circle center
		px := math.Max(c.Center.X-c.HalfExtents.X, math.Min(center.X, c.Center.X+c.HalfExtents.X))
		py := math.Max(c.Center.Y-c.HalfExtents.Y, math.Min(center.Y, c.Center.Y+c.HalfExtents.Y))
		dx, dy := center.X-px, center.Y-py
		return dx*dx+dy*dy <= radius*radius
	}
	r := c.Radius + radius
	return c.Center.DistSq(center) <= r*r
}

type bucketKey struct{ x, y int }

// Index stores colliders in square buckets of BucketSize world units.
// One collider per owner; adding again replaces it.
type Index struct {
	bucketSize float64
	colliders  map[world.ObjectID]Collider
	buckets    map[bucketKey]mapset.Set[world.ObjectID]
	maxReach   float64
}

// NewIndex creates an empty index. bucketSize should be around one cell.
func NewIndex(bucketSize float64) *Index {
	if bucketSize <= 0 {
		panic("bucket size must be positive")
	}
	return &Index{
		bucketSize: bucketSize,
		colliders:  make(map[world.ObjectID]Collider),
		buckets:    make(map[bucketKey]mapset.Set[world.ObjectID]),
	}
}

func (ix *Index) keyFor(x, y float64) bucketKey {
	return bucketKey{int(math.Floor(x / ix.bucketSize)), int(math.Floor(y / ix.bucketSize))}
}

// Add inserts or replaces the collider for c.Owner
func (ix *Index) Add(c Collider) {
	ix.Remove(c.Owner)
	ix.colliders[c.Owner] = c
	k := ix.keyFor(c.Center.X, c.Center.Y)
	set, ok := ix.buckets[k]
	if !ok {
		set = mapset.New[world.ObjectID]()
		ix.buckets[k] = set
	}
	set.Put(c.Owner)
	if r := c.reach(); r > ix.maxReach {
		ix.maxReach = r
	}
}

// Remove drops the collider owned by id. It reports whether one existed.
func (ix *Index) Remove(id world.ObjectID) bool {
	c, ok := ix.colliders[id]
	if !ok {
		return false
	}
	delete(ix.colliders, id)
	k := ix.keyFor(c.Center.X, c.Center.Y)
	if set, ok := ix.buckets[k]; ok {
		set.Remove(id)
		if set.Size() == 0 {
			delete(ix.buckets, k)
		}
	}
	if c.reach() >= ix.maxReach {
		ix.recomputeReach()
	}
	return true
}

// recomputeReach sets maxReach from the remaining colliders
func (ix *Index) recomputeReach() {
	ix.maxReach = 0
	for _, c := range ix.colliders {
		ix.maxReach = math.Max(ix.maxReach, c.reach())
	}
}

// Move relocates an existing collider. It reports whether one existed.
func (ix *Index) Move(id world.ObjectID, center world.Vec3) bool {
	c, ok := ix.colliders[id]
	if !ok {
		return false
	}
	c.Center = center
	ix.Add(c)
	return true
}

// Get returns the collider owned by id
func (ix *Index) Get(id world.ObjectID) (Collider, bool) {
	c, ok := ix.colliders[id]
	return c, ok
}

// Len returns the number of colliders
func (ix *Index) Len() int {
	return len(ix.colliders)
}

// OverlapsCircle returns the owners of colliders on a layer in mask that
// intersect the circle.
func (ix *Index) OverlapsCircle(center world.Vec3, radius float64, mask LayerMask) mapset.Set[world.ObjectID] {
	hits := mapset.New[world.ObjectID]()
	reach := radius + ix.maxReach
	lo := ix.keyFor(center.X-reach, center.Y-reach)
	hi := ix.keyFor(center.X+reach, center.Y+reach)
	for bx := lo.x; bx <= hi.x; bx++ {
		for by := lo.y; by <= hi.y; by++ {
			set, ok := ix.buckets[bucketKey{bx, by}]
			if !ok {
				continue
			}
			set.Each(func(id world.ObjectID) {
				c := ix.colliders[id]
				if mask.Has(c.Layer) && c.overlapsCircle(center, radius) {
					hits.Put(id)
				}
			})
		}
	}
	return hits
}
