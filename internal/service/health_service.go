package service

import (
	"context"
	"time"

	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DBPinger is satisfied by *pgxpool.Pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports on the backing services. The document database is
// required; Redis only backs the cache and snapshot listener, so losing it
// degrades the service instead of taking it down.
type HealthService struct {
	db        DBPinger
	rdb       *redis.Client
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

// NewHealthService creates a HealthService. db and rdb may be nil when the
// deployment does not use them.
func NewHealthService(db DBPinger, rdb *redis.Client, version string) *HealthService {
	return &HealthService{
		db:        db,
		rdb:       rdb,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger().Named("HealthService"),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overall := types.HealthStatusUp

	if h.db != nil {
		c := h.checkDatabase(ctx)
		components[types.ComponentDocumentDB] = c
		if c.Status == types.HealthStatusDown {
			overall = types.HealthStatusDown
		}
	}

	if h.rdb != nil {
		c := h.checkRedis(ctx)
		components[types.ComponentRedis] = c
		if c.Status != types.HealthStatusUp && overall == types.HealthStatusUp {
			overall = types.HealthStatusDegraded
		}
	}

	return types.HealthCheck{
		Status:     overall,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Redis unavailable, serving from the document store",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
