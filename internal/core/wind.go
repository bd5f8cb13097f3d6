package core

import "strings"

// Wind enumerates the compass directions used to bias fire spread. Row 0 is the
// northern edge of a grid, so North moves towards smaller row indices.
type Wind uint8

const (
	North Wind = iota
	South
	East
	West
)

// DefaultWind is used whenever a direction is missing or unrecognised.
const DefaultWind = East

// ParseWind accepts N/S/E/W or the full direction names in any case. Unknown
// input yields DefaultWind and ok=false.
func ParseWind(s string) (Wind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, true
	case "S", "SOUTH":
		return South, true
	case "E", "EAST":
		return East, true
	case "W", "WEST":
		return West, true
	default:
		return DefaultWind, false
	}
}

// Delta returns the unit (row, col) step in the wind direction.
func (w Wind) Delta() (int, int) {
	switch w {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 1
	}
}

// String returns the single-letter compass code.
func (w Wind) String() string {
	switch w {
	case North:
		return "N"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "E"
	}
}
