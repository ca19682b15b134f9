package controller

import (
	"sync"
	"time"
)

// Timer is a handle to a recurring callback.
type Timer interface {
	// Stop cancels the timer. It never blocks and may be called more than
	// once, including from inside the callback.
	Stop()
}

// Scheduler fires a callback at a fixed interval until the returned timer is
// stopped.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Timer
}

// TickerScheduler is a Scheduler backed by time.Ticker. Each timer runs its
// callback on its own goroutine, one call at a time.
type TickerScheduler struct{}

// Schedule implements Scheduler.
func (TickerScheduler) Schedule(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			fn()
		}
	}
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
