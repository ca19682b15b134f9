package controller

import (
	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
)

// Config holds the constants a game is built from.
type Config struct {
	Grid           rules.Grid
	Speed          rules.SpeedSchedule
	StartSegments  []rules.Cell
	StartDirection rules.Direction
	FoodStart      rules.Cell
}

// DefaultConfig returns a 40x30 grid with the standard start layout and
// speed schedule.
func DefaultConfig() Config {
	return Config{
		Grid:           rules.Grid{Width: 40, Height: 30},
		Speed:          rules.DefaultSpeedSchedule(),
		StartSegments:  rules.StartSegments,
		StartDirection: rules.StartDirection,
		FoodStart:      rules.DefaultFoodPosition,
	}
}

// Validate checks that a game can be started from the config.
func (c Config) Validate() error {
	if _, err := rules.NewGrid(c.Grid.Width, c.Grid.Height); err != nil {
		return err
	}
	if err := c.Speed.Validate(); err != nil {
		return err
	}
	if len(c.StartSegments) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no start segments")
	}
	if !c.StartDirection.Valid() {
		return errors.Wrap(ErrInvalidConfig, "invalid start direction")
	}
	for _, s := range c.StartSegments {
		if !c.Grid.IsInterior(s) {
			return errors.Wrapf(ErrInvalidConfig, "start segment %s outside %dx%d grid", s, c.Grid.Width, c.Grid.Height)
		}
	}
	if !c.Grid.IsInterior(c.FoodStart) {
		return errors.Wrapf(ErrInvalidConfig, "food start %s outside %dx%d grid", c.FoodStart, c.Grid.Width, c.Grid.Height)
	}
	return nil
}
