package rules

// DefaultFoodPosition is where the food sits at the start of every game.
var DefaultFoodPosition = Cell{Col: 15, Row: 10}

// Source is the random number source used to place food.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Food holds the single active food cell.
type Food struct {
	position Cell
	rnd      Source
}

// NewFood returns food at DefaultFoodPosition.
func NewFood(rnd Source) *Food {
	return NewFoodAt(DefaultFoodPosition, rnd)
}

// NewFoodAt returns food at the given cell.
func NewFoodAt(position Cell, rnd Source) *Food {
	return &Food{position: position, rnd: rnd}
}

// Position returns the current food cell.
func (f *Food) Position() Cell {
	return f.position
}

// Relocate moves the food to a uniformly random interior cell. Snake
// occupancy isn't checked, food can land under the body.
func (f *Food) Relocate(grid Grid) {
	f.position = Cell{
		Col: f.rnd.Intn(grid.Width-2) + 1,
		Row: f.rnd.Intn(grid.Height-2) + 1,
	}
}
