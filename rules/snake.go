package rules

import "github.com/pkg/errors"

// TickOutcome is the result of advancing the snake one tick.
type TickOutcome uint8

// Tick outcomes.
const (
	Continue TickOutcome = iota
	AteFood
	Collided
)

func (o TickOutcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case AteFood:
		return "ate-food"
	case Collided:
		return "collided"
	}
	return "unknown"
}

// StartSegments is the body every game begins with, head first.
var StartSegments = []Cell{
	{Col: 7, Row: 5},
	{Col: 6, Row: 5},
	{Col: 5, Row: 5},
}

// StartDirection is the heading every game begins with.
const StartDirection = Right

// Snake is the ordered body (head first) with its committed and requested
// directions.
type Snake struct {
	segments  []Cell
	direction Direction
	pending   Direction
}

// NewSnake returns the snake every game starts with.
func NewSnake() *Snake {
	s, _ := NewSnakeWith(StartSegments, StartDirection)
	return s
}

// NewSnakeWith returns a snake with the given body, committed and pending
// direction both set to d.
func NewSnakeWith(segments []Cell, d Direction) (*Snake, error) {
	if len(segments) == 0 {
		return nil, errors.Wrap(ErrInvalidSnake, "no segments")
	}
	if !d.Valid() {
		return nil, errors.Wrap(ErrInvalidSnake, "invalid direction")
	}
	body := make([]Cell, len(segments))
	copy(body, segments)
	return &Snake{segments: body, direction: d, pending: d}, nil
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []Cell {
	out := make([]Cell, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Head returns the first segment.
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// Direction returns the committed direction.
func (s *Snake) Direction() Direction {
	return s.direction
}

// PendingDirection returns the direction that will be committed next tick.
func (s *Snake) PendingDirection() Direction {
	return s.pending
}

// SetPendingDirection requests d for the next tick. A request for the exact
// opposite of the committed direction, or for an invalid direction, is
// dropped.
func (s *Snake) SetPendingDirection(d Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	s.pending = d
}

// NextHead returns the cell the head moves into when the pending direction
// is committed.
func (s *Snake) NextHead() Cell {
	return s.Head().Step(s.pending)
}

// Collision returns the death cause for a head moving into c, or "" when the
// move is safe. The whole current body counts, tail included, even though the
// tail would be vacated this tick.
func (s *Snake) Collision(grid Grid, c Cell) string {
	if grid.IsBorder(c) {
		return DeathCauseWallCollision
	}
	for _, segment := range s.segments {
		if segment.Equal(c) {
			return DeathCauseSelfCollision
		}
	}
	return ""
}

// Advance commits the pending direction and moves the snake one cell. On
// collision the body is left untouched. When the new head lands on the food
// the tail is kept, the caller is responsible for scoring and relocating.
func (s *Snake) Advance(grid Grid, food *Food) TickOutcome {
	s.direction = s.pending
	newHead := s.Head().Step(s.direction)

	if s.Collision(grid, newHead) != "" {
		return Collided
	}

	s.segments = append([]Cell{newHead}, s.segments...)

	if newHead.Equal(food.Position()) {
		return AteFood
	}
	s.segments = s.segments[:len(s.segments)-1]
	return Continue
}
