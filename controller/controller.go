// Package controller owns a running game. It drives the snake from a
// recurring timer, keeps score, speeds the game up and handles game over and
// restart. Renderers receive a Frame after every change.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrNotGameOver is returned when restarting a game that is still running.
	ErrNotGameOver = errors.New("controller: game is still running")
	// ErrInvalidConfig is returned when a game can't be built from a config.
	ErrInvalidConfig = errors.New("controller: invalid config")
)

// GameState is everything that changes while a game is played. It is built
// wholesale at start and on every restart.
type GameState struct {
	ID       string
	Turn     int
	Score    int
	Interval time.Duration
	Status   rules.GameStatus
	Death    *rules.Death
	Snake    *rules.Snake
	Food     *rules.Food
}

// Controller runs a single game. All state is guarded by one mutex; ticks and
// input never interleave.
type Controller struct {
	cfg       Config
	scheduler Scheduler
	rnd       rules.Source
	renderers []Renderer

	mu         sync.Mutex
	state      *GameState
	inputs     []rules.Direction
	timer      Timer
	generation uint64
	started    bool
	errs       chan error
}

// New validates the config and sets up a fresh game. The timer isn't started
// until Start or Run.
func New(cfg Config, scheduler Scheduler, rnd rules.Source, renderers ...Renderer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}
	if rnd == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "random source is nil")
	}
	c := &Controller{
		cfg:       cfg,
		scheduler: scheduler,
		rnd:       rnd,
		renderers: renderers,
		errs:      make(chan error, 1),
	}
	c.state = c.newGame()
	return c, nil
}

func (c *Controller) newGame() *GameState {
	// The config was validated, so the snake can't fail to build.
	snake, _ := rules.NewSnakeWith(c.cfg.StartSegments, c.cfg.StartDirection)
	state := &GameState{
		ID:       uuid.NewV4().String(),
		Interval: c.cfg.Speed.Base,
		Status:   rules.GameStatusRunning,
		Snake:    snake,
		Food:     rules.NewFoodAt(c.cfg.FoodStart, c.rnd),
	}
	gamesStarted.Inc()
	currentScore.Set(0)
	tickInterval.Set(state.Interval.Seconds())
	log.WithFields(log.Fields{
		"GameID":   state.ID,
		"Interval": state.Interval,
	}).Info("new game")
	return state
}

// Start begins ticking the current game. Calling Start twice is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return
	}
	c.started = true
	if c.state.Status == rules.GameStatusRunning {
		c.reschedule(c.state.Interval)
	}
}

// Stop cancels the timer. The game state is kept.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = false
	c.cancelTimer()
}

// Run starts the game and blocks until ctx is done or a renderer fails.
func (c *Controller) Run(ctx context.Context) error {
	c.Start()
	defer c.Stop()

	if err := c.Render(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-c.errs:
		return err
	}
}

// RequestDirection queues a direction change. Queued requests are applied in
// order at the start of the next tick. Requests made while the game is over
// are dropped.
func (c *Controller) RequestDirection(d rules.Direction) {
	if !d.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != rules.GameStatusRunning {
		return
	}
	c.inputs = append(c.inputs, d)
}

// Tick advances the current game one step regardless of the timer.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tick()
}

// Restart replaces a finished game with a fresh one and restarts the timer
// if the controller is started. A renderer failure while drawing the new game
// doesn't undo the restart, it is reported through Run like a failed tick.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != rules.GameStatusOver {
		return ErrNotGameOver
	}
	log.WithFields(log.Fields{
		"GameID": c.state.ID,
		"Score":  c.state.Score,
	}).Info("restart")

	c.state = c.newGame()
	c.inputs = nil
	if c.started {
		c.reschedule(c.state.Interval)
	}
	if err := c.render(); err != nil {
		c.fail(err)
	}
	return nil
}

// Frame returns a snapshot of the current game.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frame()
}

// Render pushes the current frame to every renderer.
func (c *Controller) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.render()
}

func (c *Controller) tick() error {
	state := c.state
	for _, d := range c.inputs {
		state.Snake.SetPendingDirection(d)
	}
	c.inputs = c.inputs[:0]

	if state.Status != rules.GameStatusRunning {
		return nil
	}

	done := instrument()
	state.Turn++
	logger := log.WithFields(log.Fields{
		"GameID": state.ID,
		"Turn":   state.Turn,
	})

	outcome := state.Snake.Advance(c.cfg.Grid, state.Food)
	logger.WithField("Direction", state.Snake.Direction()).
		WithField("Outcome", outcome).
		Debug("move")

	switch outcome {
	case rules.Collided:
		cause := state.Snake.Collision(c.cfg.Grid, state.Snake.NextHead())
		c.cancelTimer()
		state.Status = rules.GameStatusOver
		state.Death = &rules.Death{Cause: cause, Turn: state.Turn}
		gamesOver.WithLabelValues(cause).Inc()
		logger.WithField("Cause", cause).
			WithField("Score", state.Score).
			Info("game over")
	case rules.AteFood:
		state.Score++
		state.Food.Relocate(c.cfg.Grid)
		foodEaten.Inc()
		currentScore.Set(float64(state.Score))
		logger.WithField("Score", state.Score).
			WithField("Food", state.Food.Position()).
			Info("snake ate")
		if next, changed := c.cfg.Speed.Next(state.Interval, state.Score); changed {
			state.Interval = next
			tickInterval.Set(next.Seconds())
			logger.WithField("Interval", next).Info("speed up")
			if c.started {
				c.reschedule(next)
			}
		}
	case rules.Continue:
	}
	done(outcome.String())

	return c.render()
}

func (c *Controller) render() error {
	frame := c.frame()
	for _, r := range c.renderers {
		if err := r.Render(frame); err != nil {
			return errors.Wrap(err, "controller: render failed")
		}
	}
	return nil
}

func (c *Controller) frame() Frame {
	state := c.state
	return Frame{
		GameID:     state.ID,
		Turn:       state.Turn,
		Status:     state.Status,
		Grid:       c.cfg.Grid,
		Snake:      state.Snake.Segments(),
		Direction:  state.Snake.Direction(),
		Food:       state.Food.Position(),
		Score:      state.Score,
		Interval:   state.Interval,
		IntervalMS: int64(state.Interval / time.Millisecond),
		Death:      state.Death,
	}
}

// reschedule replaces the active timer. Callbacks from any earlier timer are
// ignored once this returns.
func (c *Controller) reschedule(interval time.Duration) {
	c.cancelTimer()
	c.generation++
	gen := c.generation
	c.timer = c.scheduler.Schedule(interval, func() { c.scheduledTick(gen) })
}

func (c *Controller) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *Controller) scheduledTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	if err := c.tick(); err != nil {
		c.fail(err)
	}
}

// fail stops the timer and hands err to Run. Only the first error is kept.
func (c *Controller) fail(err error) {
	log.WithError(err).WithField("GameID", c.state.ID).Error("game loop failed")
	c.cancelTimer()
	select {
	case c.errs <- err:
	default:
	}
}
