package consistent

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	members   prometheus.Gauge
	positions prometheus.Gauge
	replicas  prometheus.Gauge

	lookupsTotal *prometheus.CounterVec
}

var _ prometheus.Collector = (*metrics)(nil)

func newMetrics(cfg Config) *metrics {
	var m metrics

	m.members = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ring_members",
		Help: "Current number of registered members.",
	})
	m.positions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ring_positions",
		Help: "Current number of virtual positions on the ring.",
	})
	m.replicas = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ring_replicas",
		Help: "Number of virtual positions each member gets.",
	})
	m.lookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ring_lookups_total",
		Help: "Total number of key lookups. result will be one of: success or empty_ring.",
	}, []string{"result"})

	// Set constants
	m.replicas.Set(float64(cfg.Replicas))

	return &m
}

func (m *metrics) Describe(ch chan<- *prometheus.Desc) {
	m.members.Describe(ch)
	m.positions.Describe(ch)
	m.replicas.Describe(ch)
	m.lookupsTotal.Describe(ch)
}

func (m *metrics) Collect(ch chan<- prometheus.Metric) {
	m.members.Collect(ch)
	m.positions.Collect(ch)
	m.replicas.Collect(ch)
	m.lookupsTotal.Collect(ch)
}
