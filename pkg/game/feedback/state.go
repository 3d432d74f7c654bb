// Package feedback turns placement verdicts into what the player sees while
// dragging: a tinted preview ghost, and a shake and flash on the drag clone
// when a drop is refused.
package feedback

import (
	"fmt"
	"time"

	"dropgrid/pkg/engine/world"
)

// State is one of Idle, Previewing or RejectAnimating
type State interface {
	feedbackState()
	String() string
}

// Idle means no gesture is being shown
type Idle struct{}

// Previewing means a drag is in progress and the ghost shows Valid
type Previewing struct {
	Valid bool
}

// RejectAnimating is a refused drop being played out on the clone.
// Start is the drop position the shake oscillates around.
type RejectAnimating struct {
	Start   world.Vec3
	Elapsed time.Duration
}

func (Idle) feedbackState()            {}
func (Previewing) feedbackState()      {}
func (RejectAnimating) feedbackState() {}

func (Idle) String() string { return "idle" }

func (p Previewing) String() string {
	if p.Valid {
		return "previewing (valid)"
	}
	return "previewing (invalid)"
}

func (r RejectAnimating) String() string {
	return fmt.Sprintf("rejecting at %v (%v)", r.Start, r.Elapsed)
}

// IsIdle reports whether s is Idle (a nil state counts as idle)
func IsIdle(s State) bool {
	if s == nil {
		return true
	}
	_, ok := s.(Idle)
	return ok
}
