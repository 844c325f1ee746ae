package app

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the matchmaking counters exported on /metrics.
type Metrics struct {
	MatchesFormed prometheus.Counter
	FramesRelayed prometheus.Counter
	RelayDrops    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MatchesFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roulette_matches_formed_total",
			Help: "Two-party sessions formed since start.",
		}),
		FramesRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roulette_frames_relayed_total",
			Help: "Signaling and chat frames forwarded between partners.",
		}),
		RelayDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roulette_relay_drops_total",
			Help: "Frames dropped because the sender had no session.",
		}),
	}
	reg.MustRegister(m.MatchesFormed, m.FramesRelayed, m.RelayDrops)
	return m
}

// ObserveSizes exports the live queue and session table sizes. Separate
// from NewMetrics because the gauges read from the orchestrator, which is
// constructed after the counters.
func (m *Metrics) ObserveSizes(reg prometheus.Registerer, o *Orchestrator) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "roulette_queued_clients",
		Help: "Clients currently waiting for a partner.",
	}, func() float64 { return float64(o.QueueLen()) }))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "roulette_active_sessions",
		Help: "Two-party sessions currently active.",
	}, func() float64 { return float64(o.ActiveSessions()) }))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "roulette_connected_clients",
		Help: "Clients with a bound transport connection.",
	}, func() float64 { return float64(o.Registry.Count()) }))
}
