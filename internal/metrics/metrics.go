// Package metrics exposes mini-game session counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
)

// Recorder counts sessions and levels. It implements minigame.Observer
// and is safe for concurrent use by many sessions.
type Recorder struct {
	registry *prometheus.Registry

	sessions *prometheus.CounterVec
	levels   *prometheus.CounterVec
	bonus    *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
}

var _ minigame.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry holding the
// session metrics plus the Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "metro",
				Name:      "sessions_total",
				Help:      "Completed mini-game sessions.",
			},
			[]string{"variant", "outcome"},
		),
		levels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "metro",
				Name:      "levels_total",
				Help:      "Completed mini-game levels.",
			},
			[]string{"variant", "status"},
		),
		bonus: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "metro",
				Name:      "session_bonus_points",
				Help:      "Bonus points reported per session.",
				Buckets:   []float64{0, 100, 200, 300, 400, 500, 600, 1000},
			},
			[]string{"variant"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "metro",
				Name:      "session_duration_seconds",
				Help:      "Play time per session.",
				Buckets:   prometheus.LinearBuckets(5, 5, 12),
			},
			[]string{"variant"},
		),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metro",
			Name:      "active_sessions",
			Help:      "Sessions currently being played.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.sessions,
		r.levels,
		r.bonus,
		r.duration,
		r.active,
	)
	return r
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// SessionStarted marks a session as active. The returned func marks it
// inactive again and may be called more than once.
func (r *Recorder) SessionStarted() (release func()) {
	r.active.Inc()
	released := false
	return func() {
		if released {
			return
		}
		released = true
		r.active.Dec()
	}
}

// LevelEnded implements minigame.Observer.
func (r *Recorder) LevelEnded(v core.Variant, res minigame.LevelResult) {
	r.levels.WithLabelValues(string(v), res.Status.String()).Inc()
}

// SessionEnded implements minigame.Observer.
func (r *Recorder) SessionEnded(res minigame.Result) {
	variant := string(res.Variant)
	r.sessions.WithLabelValues(variant, res.Outcome.String()).Inc()
	r.bonus.WithLabelValues(variant).Observe(float64(res.Bonus))
	r.duration.WithLabelValues(variant).Observe(res.Duration.Seconds())
}
