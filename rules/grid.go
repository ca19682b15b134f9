package rules

import "github.com/pkg/errors"

// Grid is the fixed cell space the game is played on. The outermost ring of
// cells is the border: it is drawn and it kills.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewGrid returns a grid with the given size in cells.
func NewGrid(width, height int) (Grid, error) {
	if width < 3 || height < 3 {
		return Grid{}, errors.Wrapf(ErrInvalidGrid, "got %dx%d", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// GridForCanvas derives the grid from a pixel canvas and a cell size.
func GridForCanvas(canvasWidth, canvasHeight, cellSize int) (Grid, error) {
	if cellSize <= 0 {
		return Grid{}, errors.Wrapf(ErrInvalidGrid, "cell size %d", cellSize)
	}
	return NewGrid(canvasWidth/cellSize, canvasHeight/cellSize)
}

// IsBorder reports whether the cell lies on the outermost ring.
func (g Grid) IsBorder(c Cell) bool {
	return c.Col == 0 || c.Row == 0 || c.Col == g.Width-1 || c.Row == g.Height-1
}

// IsInterior reports whether the cell is inside the border.
func (g Grid) IsInterior(c Cell) bool {
	return c.Col >= 1 && c.Col <= g.Width-2 && c.Row >= 1 && c.Row <= g.Height-2
}
