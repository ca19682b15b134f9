package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(interval time.Duration, fn func()) Timer {
	t := &fakeTimer{interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) active() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

type scriptedSource struct{ values []int }

func (s *scriptedSource) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

type recorder struct {
	sync.Mutex
	frames []Frame
	fail   error
}

func (r *recorder) Render(f Frame) error {
	r.Lock()
	defer r.Unlock()
	r.frames = append(r.frames, f)
	return r.fail
}

func (r *recorder) last() Frame {
	r.Lock()
	defer r.Unlock()
	return r.frames[len(r.frames)-1]
}

func newTestController(t *testing.T, cfg Config, rnd rules.Source) (*Controller, *fakeScheduler, *recorder) {
	if rnd == nil {
		rnd = &scriptedSource{}
	}
	sched := &fakeScheduler{}
	rec := &recorder{}
	c, err := New(cfg, sched, rnd, rec)
	require.NoError(t, err)
	return c, sched, rec
}

func TestNew_InitialState(t *testing.T) {
	c, _, _ := newTestController(t, DefaultConfig(), nil)

	f := c.Frame()
	require.Equal(t, rules.GameStatusRunning, f.Status)
	require.Equal(t, 0, f.Score)
	require.Equal(t, 0, f.Turn)
	require.Equal(t, 100*time.Millisecond, f.Interval)
	require.Equal(t, int64(100), f.IntervalMS)
	require.Equal(t, []rules.Cell{{Col: 7, Row: 5}, {Col: 6, Row: 5}, {Col: 5, Row: 5}}, f.Snake)
	require.Equal(t, rules.Right, f.Direction)
	require.Equal(t, rules.Cell{Col: 15, Row: 10}, f.Food)
	require.NotEmpty(t, f.GameID)
	require.Nil(t, f.Death)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid = rules.Grid{Width: 10, Height: 10}
	_, err := New(cfg, &fakeScheduler{}, &scriptedSource{})
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.Speed.Threshold = 0
	_, err = New(cfg, &fakeScheduler{}, &scriptedSource{})
	require.Error(t, err)

	_, err = New(DefaultConfig(), &fakeScheduler{}, nil)
	require.Error(t, err)
}

func TestController_TickContinue(t *testing.T) {
	c, _, rec := newTestController(t, DefaultConfig(), nil)

	require.NoError(t, c.Tick())
	f := rec.last()
	require.Equal(t, []rules.Cell{{Col: 8, Row: 5}, {Col: 7, Row: 5}, {Col: 6, Row: 5}}, f.Snake)
	require.Equal(t, 0, f.Score)
	require.Equal(t, 1, f.Turn)
	require.Equal(t, rules.GameStatusRunning, f.Status)
}

func TestController_TickAteFood(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FoodStart = rules.Cell{Col: 8, Row: 5}
	c, _, rec := newTestController(t, cfg, &scriptedSource{values: []int{19, 14}})

	require.NoError(t, c.Tick())
	f := rec.last()
	require.Equal(t, []rules.Cell{{Col: 8, Row: 5}, {Col: 7, Row: 5}, {Col: 6, Row: 5}, {Col: 5, Row: 5}}, f.Snake, spew.Sdump(f))
	require.Equal(t, 1, f.Score)
	require.Equal(t, rules.Cell{Col: 20, Row: 15}, f.Food)
	require.True(t, cfg.Grid.IsInterior(f.Food))
}

func TestController_TickWallCollision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 1, Row: 5}, {Col: 2, Row: 5}, {Col: 3, Row: 5}}
	cfg.StartDirection = rules.Left
	c, sched, rec := newTestController(t, cfg, nil)
	c.Start()
	require.Len(t, sched.active(), 1)

	require.NoError(t, c.Tick())
	f := rec.last()
	require.Equal(t, rules.GameStatusOver, f.Status)
	require.True(t, f.Over())
	require.Equal(t, cfg.StartSegments, f.Snake)
	require.Equal(t, &rules.Death{Cause: rules.DeathCauseWallCollision, Turn: 1}, f.Death)
	require.Empty(t, sched.active())

	// Further ticks are ignored.
	require.NoError(t, c.Tick())
	require.Equal(t, 1, c.Frame().Turn)
}

func TestController_TickSelfCollision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 5, Row: 5}, {Col: 6, Row: 5}, {Col: 7, Row: 5}, {Col: 6, Row: 5}}
	cfg.StartDirection = rules.Right
	c, _, _ := newTestController(t, cfg, nil)

	require.NoError(t, c.Tick())
	f := c.Frame()
	require.Equal(t, rules.GameStatusOver, f.Status)
	require.Equal(t, rules.DeathCauseSelfCollision, f.Death.Cause)
	require.Equal(t, cfg.StartSegments, f.Snake)
}

func TestController_RequestDirection(t *testing.T) {
	c, _, _ := newTestController(t, DefaultConfig(), nil)

	c.RequestDirection(rules.Up)
	require.NoError(t, c.Tick())
	require.Equal(t, rules.Cell{Col: 7, Row: 4}, c.Frame().Snake[0])

	// Down is opposite of the committed Up.
	c.RequestDirection(rules.Down)
	require.NoError(t, c.Tick())
	require.Equal(t, rules.Cell{Col: 7, Row: 3}, c.Frame().Snake[0])

	// Last request before the tick wins.
	c.RequestDirection(rules.Left)
	c.RequestDirection(rules.Right)
	require.NoError(t, c.Tick())
	require.Equal(t, rules.Cell{Col: 8, Row: 3}, c.Frame().Snake[0])

	c.RequestDirection(rules.Direction(0))
	require.NoError(t, c.Tick())
	require.Equal(t, rules.Cell{Col: 9, Row: 3}, c.Frame().Snake[0])
}

func TestController_SpeedProgression(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FoodStart = rules.Cell{Col: 8, Row: 5}
	cfg.Speed = rules.SpeedSchedule{
		Base:      100 * time.Millisecond,
		Step:      10 * time.Millisecond,
		Floor:     70 * time.Millisecond,
		Threshold: 2,
	}
	// Every relocation puts the food right in front of the head.
	var values []int
	for i := 0; i < 10; i++ {
		values = append(values, 8+i, 4)
	}
	c, sched, _ := newTestController(t, cfg, &scriptedSource{values: values})
	c.Start()

	expected := map[int]time.Duration{
		1: 100, 2: 90, 3: 90, 4: 80, 5: 80, 6: 70, 7: 70, 8: 70, 9: 70, 10: 70,
	}
	for i := 1; i <= 10; i++ {
		before := c.Frame()
		require.NoError(t, c.Tick())
		f := c.Frame()
		require.Equal(t, before.Score+1, f.Score)
		require.Equal(t, len(before.Snake)+1, len(f.Snake))
		require.Equal(t, expected[i]*time.Millisecond, f.Interval, "score %d", f.Score)
	}

	var intervals []time.Duration
	for _, tm := range sched.timers {
		intervals = append(intervals, tm.interval)
	}
	require.Equal(t, []time.Duration{
		100 * time.Millisecond,
		90 * time.Millisecond,
		80 * time.Millisecond,
		70 * time.Millisecond,
	}, intervals)
	require.Len(t, sched.active(), 1)
}

func TestController_StaleTimerIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FoodStart = rules.Cell{Col: 8, Row: 5}
	cfg.Speed.Threshold = 1
	c, sched, _ := newTestController(t, cfg, &scriptedSource{values: []int{30, 20}})
	c.Start()

	first := sched.timers[0]
	first.fn()
	require.Equal(t, 1, c.Frame().Turn)
	require.Len(t, sched.timers, 2)
	require.True(t, first.stopped)

	first.fn()
	require.Equal(t, 1, c.Frame().Turn)

	sched.timers[1].fn()
	require.Equal(t, 2, c.Frame().Turn)
}

func TestController_Restart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 2, Row: 5}, {Col: 3, Row: 5}, {Col: 4, Row: 5}}
	cfg.StartDirection = rules.Left
	cfg.FoodStart = rules.Cell{Col: 1, Row: 5}
	c, sched, rec := newTestController(t, cfg, &scriptedSource{values: []int{10, 10}})
	c.Start()

	require.Equal(t, ErrNotGameOver, c.Restart())

	require.NoError(t, c.Tick())
	require.Equal(t, 1, c.Frame().Score)
	require.NoError(t, c.Tick())
	over := c.Frame()
	require.True(t, over.Over())
	require.Empty(t, sched.active())

	require.NoError(t, c.Restart())
	f := rec.last()
	require.Equal(t, rules.GameStatusRunning, f.Status)
	require.Equal(t, 0, f.Score)
	require.Equal(t, 0, f.Turn)
	require.Equal(t, cfg.Speed.Base, f.Interval)
	require.Equal(t, cfg.StartSegments, f.Snake)
	require.Equal(t, rules.Left, f.Direction)
	require.Equal(t, cfg.FoodStart, f.Food)
	require.Nil(t, f.Death)
	require.NotEqual(t, over.GameID, f.GameID)

	active := sched.active()
	require.Len(t, active, 1)
	require.Equal(t, cfg.Speed.Base, active[0].interval)

	require.Equal(t, ErrNotGameOver, c.Restart())
}

func TestController_RestartClearsInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 1, Row: 5}}
	cfg.StartDirection = rules.Left
	c, _, _ := newTestController(t, cfg, nil)

	require.NoError(t, c.Tick())
	c.RequestDirection(rules.Up)
	require.NoError(t, c.Restart())
	require.NoError(t, c.Tick())
	// The queued Up belonged to the finished game.
	require.True(t, c.Frame().Over())
}

func TestController_StopStart(t *testing.T) {
	c, sched, _ := newTestController(t, DefaultConfig(), nil)
	c.Start()
	c.Start()
	require.Len(t, sched.timers, 1)

	c.Stop()
	require.Empty(t, sched.active())

	c.Start()
	require.Len(t, sched.active(), 1)
}

func TestController_RunRenderError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed.Base = time.Millisecond
	cfg.Speed.Floor = time.Millisecond
	boom := errors.New("boom")
	calls := 0
	r := RendererFunc(func(Frame) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	})
	c, err := New(cfg, TickerScheduler{}, &scriptedSource{}, r)
	require.NoError(t, err)

	errs := make(chan error, 1)
	go func() { errs <- c.Run(context.Background()) }()

	select {
	case err := <-errs:
		require.Error(t, err)
		require.Contains(t, err.Error(), "boom")
	case <-time.After(5 * time.Second):
		t.Fatal("run never returned")
	}
}

func TestController_RunCancel(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Run(ctx))
	require.Len(t, rec.frames, 1)
	require.Empty(t, sched.active())
}

func TestController_RequestDirectionDroppedWhileOver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 1, Row: 5}, {Col: 2, Row: 5}}
	cfg.StartDirection = rules.Left
	c, sched, _ := newTestController(t, cfg, nil)
	c.Start()

	require.NoError(t, c.Tick())
	require.True(t, c.Frame().Over())
	require.Empty(t, sched.active())

	for i := 0; i < 1000; i++ {
		c.RequestDirection(rules.Up)
	}
	require.Empty(t, c.inputs)
}

func TestController_RestartRenderErrorKeepsNewGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSegments = []rules.Cell{{Col: 1, Row: 5}}
	cfg.StartDirection = rules.Left
	c, sched, rec := newTestController(t, cfg, nil)
	c.Start()

	require.NoError(t, c.Tick())
	require.True(t, c.Frame().Over())

	rec.fail = errors.New("terminal gone")
	require.NoError(t, c.Restart())
	require.Equal(t, rules.GameStatusRunning, c.Frame().Status)
	require.Empty(t, sched.active())

	select {
	case err := <-c.errs:
		require.Contains(t, err.Error(), "terminal gone")
	default:
		t.Fatal("render failure was not reported")
	}
}

func tickSamples(t *testing.T, outcome string) uint64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "snake_controller_ticks" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestController_TickInstrumented(t *testing.T) {
	c, _, _ := newTestController(t, DefaultConfig(), nil)

	before := tickSamples(t, rules.Continue.String())
	require.NoError(t, c.Tick())
	require.NoError(t, c.Tick())
	require.Equal(t, before+2, tickSamples(t, rules.Continue.String()))
}
