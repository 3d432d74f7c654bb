// Package placement decides whether a world position is a legal drop target.
package placement

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"dropgrid/pkg/engine/world"
)

// Reason explains an invalid verdict
type Reason int

// Reasons
const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonBlocked
	ReasonMissingCollaborator
)

// Key returns the translation key for the reason
func (r Reason) Key() string {
	switch r {
	case ReasonNone:
		return "DROP_VALID"
	case ReasonOutOfBounds:
		return "DROP_OUT_OF_BOUNDS"
	case ReasonBlocked:
		return "DROP_BLOCKED"
	case ReasonMissingCollaborator:
		return "DROP_NO_CAMERA"
	default:
		return "DROP_UNKNOWN"
	}
}

// String returns the translated, human-readable reason
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return gotext.Get("DROP_VALID")
	case ReasonOutOfBounds:
		return gotext.Get("DROP_OUT_OF_BOUNDS")
	case ReasonBlocked:
		return gotext.Get("DROP_BLOCKED")
	case ReasonMissingCollaborator:
		return gotext.Get("DROP_NO_CAMERA")
	default:
		return gotext.Get("DROP_UNKNOWN")
	}
}

// Verdict is the classification of one candidate position.
// Cell is the un-offset cell the position maps to; Snapped is where an
// object dropped there would be placed.
type Verdict struct {
	Valid   bool
	Reason  Reason
	Cell    world.CellIndex
	Snapped world.Vec3
}

// Valid builds a valid verdict
func Valid(cell world.CellIndex, snapped world.Vec3) Verdict {
	return Verdict{Valid: true, Cell: cell, Snapped: snapped}
}

// Invalid builds an invalid verdict
func Invalid(reason Reason, cell world.CellIndex, snapped world.Vec3) Verdict {
	return Verdict{Reason: reason, Cell: cell, Snapped: snapped}
}

func (v Verdict) String() string {
	if v.Valid {
		return fmt.Sprintf(gotext.Get("DROP_VALID_AT"), v.Cell)
	}
	return fmt.Sprintf(gotext.Get("DROP_INVALID_AT"), v.Cell, v.Reason)
}
