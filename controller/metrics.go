package controller

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tickCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "ticks",
			Help:      "Ticks processed by the controller, by outcome.",
		},
		[]string{"outcome"},
	)
	foodEaten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "food_eaten_total",
			Help:      "Food consumed across all games.",
		},
	)
	gamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "games_started_total",
			Help:      "Games started, including restarts.",
		},
	)
	gamesOver = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "games_over_total",
			Help:      "Games ended, by death cause.",
		},
		[]string{"cause"},
	)
	currentScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "score",
			Help:      "Score of the current game.",
		},
	)
	tickInterval = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "controller",
			Name:      "tick_interval_seconds",
			Help:      "Current tick interval.",
		},
	)
)

func init() {
	prometheus.MustRegister(tickCalls, foodEaten, gamesStarted, gamesOver, currentScore, tickInterval)
}

// instrument times a tick; call the result with the outcome once known.
func instrument() func(outcome string) {
	var outcome string
	t := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		tickCalls.WithLabelValues(outcome).Observe(v)
	}))
	return func(o string) {
		outcome = o
		t.ObserveDuration()
	}
}
