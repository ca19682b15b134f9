package rules

// GameStatus is the state of a game.
type GameStatus string

const (
	// GameStatusRunning represents a game being ticked
	GameStatusRunning GameStatus = "running"
	// GameStatusOver represents a game that ended with a collision
	GameStatusOver GameStatus = "game-over"
)
