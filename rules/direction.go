package rules

import "strings"

// Direction is one of the four headings a snake can move in.
type Direction uint8

// The zero value is not a direction, so an unset field never passes for Up.
const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists every valid direction.
var Directions = []Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Opposite returns the 180 degree turn of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic("rules: invalid direction")
}

// Delta returns the column and row offset of one step in d. Rows grow
// downwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	panic("rules: invalid direction")
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDirection
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return ErrInvalidDirection
	}
	*d = parsed
	return nil
}

// ParseDirection maps a direction name to a Direction. Names are matched
// case-insensitively.
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return 0, false
}

var keyCodes = map[int]Direction{
	37: Left,
	38: Up,
	39: Right,
	40: Down,
}

// DirectionForKeyCode maps a browser arrow key code to a direction. Any other
// code is ignored.
func DirectionForKeyCode(code int) (Direction, bool) {
	d, ok := keyCodes[code]
	return d, ok
}
