package commands

import (
	"github.com/battlesnakeio/snake/rules"
	termbox "github.com/nsf/termbox-go"
)

// action is what a key press asks the game to do.
type action struct {
	direction rules.Direction
	restart   bool
	quit      bool
}

var keyDirections = map[termbox.Key]rules.Direction{
	termbox.KeyArrowUp:    rules.Up,
	termbox.KeyArrowDown:  rules.Down,
	termbox.KeyArrowLeft:  rules.Left,
	termbox.KeyArrowRight: rules.Right,
}

var runeDirections = map[rune]rules.Direction{
	'w': rules.Up,
	'k': rules.Up,
	's': rules.Down,
	'j': rules.Down,
	'a': rules.Left,
	'h': rules.Left,
	'd': rules.Right,
	'l': rules.Right,
}

// actionForEvent maps a terminal event to an action. Unrecognised keys map
// to the zero action.
func actionForEvent(ev termbox.Event) action {
	if ev.Type != termbox.EventKey {
		return action{}
	}
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return action{quit: true}
	case termbox.KeyEnter:
		return action{restart: true}
	}
	if d, ok := keyDirections[ev.Key]; ok {
		return action{direction: d}
	}
	switch ev.Ch {
	case 'q':
		return action{quit: true}
	case 'r':
		return action{restart: true}
	}
	if d, ok := runeDirections[ev.Ch]; ok {
		return action{direction: d}
	}
	return action{}
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			e := termbox.PollEvent()
			if e.Type == termbox.EventInterrupt {
				close(ev)
				return
			}
			ev <- e
		}
	}(eventQueue)
	return eventQueue
}
