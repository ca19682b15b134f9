package rules

import "fmt"

// Cell is a single (column, row) coordinate on the grid.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Equal checks if 2 cells are the same col,row coordinate
func (c Cell) Equal(other Cell) bool {
	return c.Col == other.Col && c.Row == other.Row
}

// Step returns the cell one space away in the given direction.
func (c Cell) Step(d Direction) Cell {
	dc, dr := d.Delta()
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}
