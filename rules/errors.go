package rules

import "github.com/pkg/errors"

var (
	// ErrInvalidGrid is returned when the grid has no playable interior.
	ErrInvalidGrid = errors.New("rules: grid must be at least 3x3 cells")
	// ErrInvalidDirection is returned when a direction name can't be parsed.
	ErrInvalidDirection = errors.New("rules: invalid direction")
	// ErrInvalidSnake is returned when a snake layout is unusable.
	ErrInvalidSnake = errors.New("rules: invalid snake")
	// ErrInvalidSpeed is returned when a speed schedule is inconsistent.
	ErrInvalidSpeed = errors.New("rules: invalid speed schedule")
)
