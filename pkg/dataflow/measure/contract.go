package measure

import "time"

// Measure collects one metric per node of a graph, keyed by node ID.
type Measure interface {
	AddMetric(id string) Metric
	GetMetric(id string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of a single node. Transform durations
// are recorded against the node itself, transport durations against the
// upstream node the data was pulled from.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddTransportDuration(parentID string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGTransportDuration() map[string]*TransportInfo
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	AllTransports() map[string]*TransportInfo
}
