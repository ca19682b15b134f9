package commands

import (
	"fmt"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorBlue
	borderColor  = termbox.ColorWhite
	textColor    = termbox.ColorDefault

	// Terminal cells are about twice as tall as wide, so a grid cell takes
	// two columns.
	cellWidth = 2
)

var foodEmoji = []rune{
	'🍒',
	'🍍',
	'🍑',
	'🍇',
	'🍏',
	'🍌',
	'🍫',
	'🍭',
	'🍕',
	'🍩',
	'🍗',
	'🍖',
	'🍬',
	'🍤',
	'🍪',
}

type termboxRenderer struct{}

// layout is where the grid sits on the terminal.
type layout struct {
	left, top int
}

func centered(screenW, screenH int, grid rules.Grid) layout {
	l := layout{
		left: (screenW - grid.Width*cellWidth) / 2,
		top:  (screenH - grid.Height) / 2,
	}
	if l.left < 0 {
		l.left = 0
	}
	if l.top < 0 {
		l.top = 0
	}
	return l
}

func (l layout) screen(c rules.Cell) (int, int) {
	return l.left + c.Col*cellWidth, l.top + c.Row
}

func fitsScreen(screenW, screenH int, grid rules.Grid) error {
	if screenW < grid.Width*cellWidth || screenH < grid.Height {
		return errors.Errorf("terminal is %dx%d, the %dx%d grid needs at least %dx%d",
			screenW, screenH, grid.Width, grid.Height, grid.Width*cellWidth, grid.Height)
	}
	return nil
}

func (termboxRenderer) Render(f controller.Frame) error {
	termbox.Clear(defaultColor, defaultColor)

	w, h := termbox.Size()
	l := centered(w, h, f.Grid)

	renderScore(l, f.Score)
	renderSnake(l, f.Snake)
	renderFood(l, f.Food)
	renderBorder(l, f.Grid)
	if f.Over() {
		renderGameOver(l, f)
	}

	return termbox.Flush()
}

func renderScore(l layout, score int) {
	x, y := l.screen(rules.Cell{Col: 1, Row: 1})
	tbprint(x, y, textColor, bgColor, fmt.Sprintf("Score: %d", score))
}

func renderSnake(l layout, segments []rules.Cell) {
	for _, s := range segments {
		fillCell(l, s, snakeColor)
	}
}

func foodRune(c rules.Cell) rune {
	i := (c.Col*31 + c.Row) % len(foodEmoji)
	if i < 0 {
		i = -i
	}
	return foodEmoji[i]
}

func renderFood(l layout, food rules.Cell) {
	x, y := l.screen(food)
	termbox.SetCell(x, y, foodRune(food), defaultColor, bgColor)
}

func renderBorder(l layout, grid rules.Grid) {
	for col := 0; col < grid.Width; col++ {
		fillCell(l, rules.Cell{Col: col, Row: 0}, borderColor)
		fillCell(l, rules.Cell{Col: col, Row: grid.Height - 1}, borderColor)
	}
	for row := 1; row < grid.Height-1; row++ {
		fillCell(l, rules.Cell{Col: 0, Row: row}, borderColor)
		fillCell(l, rules.Cell{Col: grid.Width - 1, Row: row}, borderColor)
	}
}

func renderGameOver(l layout, f controller.Frame) {
	midX, midY := l.screen(rules.Cell{Col: f.Grid.Width / 2, Row: f.Grid.Height / 2})
	lines := []string{
		"Game Over",
		fmt.Sprintf("Score: %d", f.Score),
		"[Enter] restart   [Esc] quit",
	}
	for i, line := range lines {
		tbprint(midX-runewidth.StringWidth(line)/2, midY-1+i, textColor, bgColor, line)
	}
}

func fillCell(l layout, c rules.Cell, color termbox.Attribute) {
	x, y := l.screen(c)
	for i := 0; i < cellWidth; i++ {
		termbox.SetCell(x+i, y, ' ', color, color)
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
