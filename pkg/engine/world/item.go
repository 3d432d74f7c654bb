package world

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// ObjectID identifies anything the host can draw or collide with:
// dragged items, clones, preview ghosts and spawned objects.
type ObjectID uuid.UUID

// NoObject is the zero ObjectID
var NoObject ObjectID

// NewObjectID returns a fresh random identity
func NewObjectID() ObjectID {
	return ObjectID(uuid.New())
}

// IsZero reports whether id is NoObject
func (id ObjectID) IsZero() bool {
	return id == NoObject
}

func (id ObjectID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight hex digits, for logs and dumps
func (id ObjectID) Short() string {
	return id.String()[:8]
}

// IDSet is a set of object identities
type IDSet = mapset.Set[ObjectID]

// NewIDSet builds a set from the given identities, skipping NoObject
func NewIDSet(ids ...ObjectID) IDSet {
	s := mapset.New[ObjectID]()
	for _, id := range ids {
		if !id.IsZero() {
			s.Put(id)
		}
	}
	return s
}

// Item describes something a widget can hand out when dragged onto the grid
type Item struct {
	ID     ObjectID
	Name   string
	Sprite string
	Color  color.RGBA
}

// NewItem creates a new item with a fresh identity
func NewItem(name, sprite string, col color.RGBA) *Item {
	return &Item{ID: NewObjectID(), Name: name, Sprite: sprite, Color: col}
}
