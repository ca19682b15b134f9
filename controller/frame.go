package controller

import (
	"time"

	"github.com/battlesnakeio/snake/rules"
)

// Frame is a snapshot of a game handed to renderers after every tick.
// IntervalMS mirrors Interval for JSON consumers.
type Frame struct {
	GameID     string           `json:"game_id"`
	Turn       int              `json:"turn"`
	Status     rules.GameStatus `json:"status"`
	Grid       rules.Grid       `json:"grid"`
	Snake      []rules.Cell     `json:"snake"`
	Direction  rules.Direction  `json:"direction"`
	Food       rules.Cell       `json:"food"`
	Score      int              `json:"score"`
	Interval   time.Duration    `json:"-"`
	IntervalMS int64            `json:"interval_ms"`
	Death      *rules.Death     `json:"death,omitempty"`
}

// Over reports whether the frame shows a finished game.
func (f Frame) Over() bool {
	return f.Status == rules.GameStatusOver
}

// Renderer draws frames. An error is fatal to the game loop.
type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame) error

// Render implements Renderer.
func (f RendererFunc) Render(frame Frame) error { return f(frame) }
