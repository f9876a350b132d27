package trips

import (
	"strings"
	"sync"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AssemblerMetrics holds Prometheus metrics for trip assembly
type AssemblerMetrics struct {
	documentsAssembled *prometheus.CounterVec
	sectionsDropped    *prometheus.CounterVec
	enumFallbacks      *prometheus.CounterVec
}

var (
	assemblerMetricsOnce   sync.Once
	globalAssemblerMetrics *AssemblerMetrics
)

// getAssemblerMetrics registers the metrics on first use only.
func getAssemblerMetrics() *AssemblerMetrics {
	assemblerMetricsOnce.Do(func() {
		globalAssemblerMetrics = &AssemblerMetrics{
			documentsAssembled: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "trip_documents_assembled_total",
				Help: "Trip documents assembled by outcome state",
			}, []string{"outcome"}),
			sectionsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "trip_sections_dropped_total",
				Help: "Optional sections and list elements dropped during assembly",
			}, []string{"section"}),
			enumFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "trip_enum_fallbacks_total",
				Help: "Unknown vocabulary tags replaced with their default",
			}, []string{"field"}),
		}
	})
	return globalAssemblerMetrics
}

func (m *AssemblerMetrics) observe(state State, diags []document.Diagnostic) {
	m.documentsAssembled.WithLabelValues(state.String()).Inc()
	for _, d := range diags {
		switch d.Kind {
		case document.KindEnumFallback:
			m.enumFallbacks.WithLabelValues(leafName(d.Path)).Inc()
		default:
			m.sectionsDropped.WithLabelValues(leafName(d.Path)).Inc()
		}
	}
}

// leafName keeps metric cardinality bounded:
// "recommendation.itinerary.dailyPlans[2].activities[0]" -> "activities".
func leafName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "document"
	}
	return path
}
