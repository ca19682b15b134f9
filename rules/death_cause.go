package rules

const (
	// DeathCauseWallCollision is when the head moves onto the border
	DeathCauseWallCollision = "wall-collision"
	// DeathCauseSelfCollision is when the head moves onto the snake's own body
	DeathCauseSelfCollision = "self-collision"
)

// Death records why and when a game ended.
type Death struct {
	Cause string `json:"cause"`
	Turn  int    `json:"turn"`
}
