package service

import (
	"github.com/portwarden/portwarden/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricCollector exposes reconciliation and action counters to the
// /metrics endpoint.
type MetricCollector struct {
	fetches     *prometheus.CounterVec
	actions     *prometheus.CounterVec
	processes   prometheus.Gauge
	connections prometheus.Gauge
}

func NewMetricCollector() *MetricCollector {
	return &MetricCollector{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portwarden",
			Name:      "fetch_total",
			Help:      "Reconciliation fetches by result.",
		}, []string{"result"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portwarden",
			Name:      "actions_total",
			Help:      "Mutating actions by kind and result.",
		}, []string{"kind", "result"}),
		processes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portwarden",
			Name:      "snapshot_processes",
			Help:      "Processes in the latest snapshot.",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portwarden",
			Name:      "snapshot_connections",
			Help:      "Connections counted by the latest scan.",
		}),
	}
}

func (c *MetricCollector) ObserveFetch(success bool) {
	c.fetches.WithLabelValues(resultLabel(success)).Inc()
}

func (c *MetricCollector) ObserveAction(kind domain.ActionKind, success bool) {
	c.actions.WithLabelValues(string(kind), resultLabel(success)).Inc()
}

func (c *MetricCollector) SetSnapshotGauges(processes, connections int) {
	c.processes.Set(float64(processes))
	c.connections.Set(float64(connections))
}

func (c *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	c.fetches.Describe(ch)
	c.actions.Describe(ch)
	c.processes.Describe(ch)
	c.connections.Describe(ch)
}

func (c *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	c.fetches.Collect(ch)
	c.actions.Collect(ch)
	c.processes.Collect(ch)
	c.connections.Collect(ch)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
