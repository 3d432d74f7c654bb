package spatial

import (
	"testing"

	"dropgrid/pkg/engine/world"
)

func TestOverlapsCircle_CircleColliders(t *testing.T) {
	ix := NewIndex(1)
	near := world.NewObjectID()
	far := world.NewObjectID()
	ix.Add(Collider{Owner: near, Layer: LayerObstacle, Center: world.Vec3{X: 2.1, Y: 2}, Radius: 0.05})
	ix.Add(Collider{Owner: far, Layer: LayerObstacle, Center: world.Vec3{X: 5, Y: 5}, Radius: 0.05})

	hits := ix.OverlapsCircle(world.Vec3{X: 2, Y: 2}, 0.2, Mask(LayerObstacle))
	if !hits.Has(near) {
		t.Error("OverlapsCircle missed collider within radius")
	}
	if hits.Has(far) {
		t.Error("OverlapsCircle returned collider far away")
	}
	if hits.Size() != 1 {
		t.Errorf("hits.Size() = %d, want 1", hits.Size())
	}
}

func TestOverlapsCircle_LayerMaskFilters(t *testing.T) {
	ix := NewIndex(1)
	id := world.NewObjectID()
	ix.Add(Collider{Owner: id, Layer: LayerPreview, Center: world.Vec3{}, Radius: 0.5})

	if hits := ix.OverlapsCircle(world.Vec3{}, 0.2, Mask(LayerObstacle, LayerPlaced)); hits.Size() != 0 {
		t.Errorf("hits on excluded layer = %d, want 0", hits.Size())
	}
	if hits := ix.OverlapsCircle(world.Vec3{}, 0.2, AllLayers); !hits.Has(id) {
		t.Error("AllLayers did not match LayerPreview collider")
	}
}

func TestOverlapsCircle_BoxCollider(t *testing.T) {
	ix := NewIndex(0.5)
	id := world.NewObjectID()
	ix.Add(Collider{Owner: id, Layer: LayerObstacle, Center: world.Vec3{X: 3, Y: 0}, HalfExtents: world.Vec2{X: 1, Y: 0.25}})

	// right at the box's left edge plus a little
	if hits := ix.OverlapsCircle(world.Vec3{X: 1.85, Y: 0}, 0.2, AllLayers); !hits.Has(id) {
		t.Error("circle touching box edge not reported")
	}
	if hits := ix.OverlapsCircle(world.Vec3{X: 3, Y: 0.6}, 0.2, AllLayers); hits.Has(id) {
		t.Error("circle above box reported as overlapping")
	}
}

func TestIndex_RemoveAndMove(t *testing.T) {
	ix := NewIndex(1)
	id := world.NewObjectID()
	ix.Add(Collider{Owner: id, Layer: LayerPlaced, Center: world.Vec3{X: 0.5, Y: 0.5}, Radius: 0.1})

	if !ix.Move(id, world.Vec3{X: 10.5, Y: 10.5}) {
		t.Fatal("Move existing collider = false")
	}
	if hits := ix.OverlapsCircle(world.Vec3{X: 0.5, Y: 0.5}, 0.2, AllLayers); hits.Size() != 0 {
		t.Error("collider still found at old position after Move")
	}
	if hits := ix.OverlapsCircle(world.Vec3{X: 10.5, Y: 10.5}, 0.2, AllLayers); !hits.Has(id) {
		t.Error("collider not found at new position after Move")
	}

	if !ix.Remove(id) {
		t.Error("Remove existing = false, want true")
	}
	if ix.Remove(id) {
		t.Error("Remove twice = true, want false")
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
	if ix.Move(id, world.Vec3{}) {
		t.Error("Move removed collider = true, want false")
	}
}

func TestIndex_AddReplacesOwner(t *testing.T) {
	ix := NewIndex(1)
	id := world.NewObjectID()
	ix.Add(Collider{Owner: id, Layer: LayerPlaced, Center: world.Vec3{}, Radius: 0.1})
	ix.Add(Collider{Owner: id, Layer: LayerPlaced, Center: world.Vec3{X: 4}, Radius: 0.1})
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}
	c, ok := ix.Get(id)
	if !ok || c.Center.X != 4 {
		t.Errorf("Get() = %+v,%v, want center X=4", c, ok)
	}
}

func TestOverlapsCircle_LargeColliderAcrossBuckets(t *testing.T) {
	ix := NewIndex(1)
	id := world.NewObjectID()
	ix.Add(Collider{Owner: id, Layer: LayerObstacle, Center: world.Vec3{X: 0.5, Y: 0.5}, Radius: 3})
	if hits := ix.OverlapsCircle(world.Vec3{X: 3, Y: 0.5}, 0.2, AllLayers); !hits.Has(id) {
		t.Error("large collider in a distant bucket not reported")
	}
}

func TestRemove_ShrinksSearchReach(t *testing.T) {
	ix := NewIndex(1)
	big := world.NewObjectID()
	small := world.NewObjectID()
	ix.Add(Collider{Owner: big, Layer: LayerObstacle, Center: world.Vec3{}, Radius: 5})
	ix.Add(Collider{Owner: small, Layer: LayerObstacle, Center: world.Vec3{X: 8}, Radius: 0.5})
	if ix.maxReach != 5 {
		t.Fatalf("maxReach = %v, want 5", ix.maxReach)
	}

	ix.Remove(big)
	if ix.maxReach != 0.5 {
		t.Errorf("maxReach after removing the large collider = %v, want 0.5", ix.maxReach)
	}
	ix.Remove(small)
	if ix.maxReach != 0 {
		t.Errorf("maxReach on empty index = %v, want 0", ix.maxReach)
	}
}

func TestRemove_SmallColliderKeepsReach(t *testing.T) {
	ix := NewIndex(1)
	big := world.NewObjectID()
	small := world.NewObjectID()
	ix.Add(Collider{Owner: big, Layer: LayerObstacle, Center: world.Vec3{}, Radius: 3})
	ix.Add(Collider{Owner: small, Layer: LayerObstacle, Center: world.Vec3{X: 8}, Radius: 0.5})

	ix.Remove(small)
	if ix.maxReach != 3 {
		t.Errorf("maxReach = %v, want 3", ix.maxReach)
	}
	if hits := ix.OverlapsCircle(world.Vec3{X: 2.5}, 0.2, AllLayers); !hits.Has(big) {
		t.Error("large collider no longer reported after removing a small one")
	}
}
