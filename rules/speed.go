package rules

import (
	"time"

	"github.com/pkg/errors"
)

// SpeedSchedule controls how the tick interval shrinks as the score grows.
// Every Threshold points the interval drops by Step, as long as the result
// stays at or above Floor.
type SpeedSchedule struct {
	Base      time.Duration `json:"base"`
	Step      time.Duration `json:"step"`
	Floor     time.Duration `json:"floor"`
	Threshold int           `json:"threshold"`
}

// DefaultSpeedSchedule starts at 100ms and speeds up by 5ms every 5 points
// down to 45ms.
func DefaultSpeedSchedule() SpeedSchedule {
	return SpeedSchedule{
		Base:      100 * time.Millisecond,
		Step:      5 * time.Millisecond,
		Floor:     45 * time.Millisecond,
		Threshold: 5,
	}
}

// Validate checks the schedule is usable.
func (s SpeedSchedule) Validate() error {
	switch {
	case s.Base <= 0:
		return errors.Wrap(ErrInvalidSpeed, "base interval must be positive")
	case s.Floor <= 0:
		return errors.Wrap(ErrInvalidSpeed, "floor must be positive")
	case s.Floor > s.Base:
		return errors.Wrap(ErrInvalidSpeed, "floor is above base interval")
	case s.Step < 0:
		return errors.Wrap(ErrInvalidSpeed, "step must not be negative")
	case s.Threshold <= 0:
		return errors.Wrap(ErrInvalidSpeed, "threshold must be positive")
	}
	return nil
}

// Next returns the interval to use after the score reached score, and
// whether it changed.
func (s SpeedSchedule) Next(current time.Duration, score int) (time.Duration, bool) {
	if s.Step == 0 || score <= 0 || score%s.Threshold != 0 {
		return current, false
	}
	if current-s.Step < s.Floor {
		return current, false
	}
	return current - s.Step, true
}
