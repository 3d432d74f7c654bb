package world

// Direction represents a cardinal direction on the grid
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// ParseDirection maps a lower-case name ("north", "n", ...) to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north", "n", "up":
		return North, true
	case "east", "e", "right":
		return East, true
	case "south", "s", "down":
		return South, true
	case "west", "w", "left":
		return West, true
	default:
		return North, false
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the cell index offsets for this direction.
// Y grows northwards, matching world space.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
