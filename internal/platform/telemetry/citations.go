package telemetry

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CitationMetrics counts rendered citations. It implements ports.SelectionRecorder.
type CitationMetrics struct {
	rendered *prometheus.CounterVec
}

// NewCitationMetrics registers the citation counters with reg.
// Pass prometheus.DefaultRegisterer to expose them on /-/metrics.
func NewCitationMetrics(reg prometheus.Registerer) *CitationMetrics {
	factory := promauto.With(reg)

	return &CitationMetrics{
		rendered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "footer_citations_rendered_total",
			Help: "Total number of citations rendered into the footer",
		}, []string{"index", "author"}),
	}
}

// RecordSelection implements ports.SelectionRecorder.
func (m *CitationMetrics) RecordSelection(_ context.Context, index int, author string) {
	m.rendered.WithLabelValues(strconv.Itoa(index), author).Inc()
}
