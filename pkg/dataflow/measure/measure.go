package measure

import (
	"sync"
)

type DefaultMeasure struct {
	mu    sync.Mutex
	Nodes map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Nodes: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(id string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		mu:            &sync.Mutex{},
		allTransports: make(map[string]*TransportInfo),
	}
	m.Nodes[id] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(id string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Nodes[id]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]Metric, len(m.Nodes))
	for id, mt := range m.Nodes {
		out[id] = mt
	}

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
