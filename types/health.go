package types

// HealthStatus is the state of the service or one of its dependencies.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "UP"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusDown     HealthStatus = "DOWN"
)

// Component names reported under HealthCheck.Components.
const (
	ComponentDocumentDB = "document_db"
	ComponentRedis      = "redis"
)

type HealthComponent struct {
	Status  HealthStatus `json:"status"`
	Details string       `json:"details,omitempty"`
}

// HealthCheck is the body of GET /health.
type HealthCheck struct {
	Status     HealthStatus               `json:"status"`
	Components map[string]HealthComponent `json:"components"`
	Version    string                     `json:"version"`
	Timestamp  string                     `json:"timestamp"`
	Uptime     string                     `json:"uptime"`
}

// Serving reports whether trips can still be read. A degraded service falls
// back to the document store and keeps serving.
func (h HealthCheck) Serving() bool {
	return h.Status != HealthStatusDown
}
