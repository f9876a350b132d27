package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SnapshotPublisher publishes full trip documents on their snapshot channel.
type SnapshotPublisher struct {
	rdb     *redis.Client
	timeout time.Duration
	log     *zap.SugaredLogger
	metrics *SnapshotMetrics
	now     func() time.Time
}

// NewSnapshotPublisher creates a publisher with a 5s publish timeout.
func NewSnapshotPublisher(rdb *redis.Client) *SnapshotPublisher {
	return &SnapshotPublisher{
		rdb:     rdb,
		timeout: 5 * time.Second,
		log:     logger.GetLogger().Named("snapshot_publisher"),
		metrics: getSnapshotMetrics(),
		now:     time.Now,
	}
}

// Publish wraps doc in an envelope and publishes it. The caller owns sequence
// numbering; it must grow with every write to the same trip.
func (p *SnapshotPublisher) Publish(ctx context.Context, tripID, ownerID string, sequence int64, doc document.Fragment) (*SnapshotEnvelope, error) {
	if tripID == "" {
		return nil, errors.New("snapshot requires a trip id")
	}
	raw, err := document.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot document: %w", err)
	}

	env := &SnapshotEnvelope{
		ID:          uuid.New().String(),
		TripID:      tripID,
		OwnerID:     ownerID,
		Sequence:    sequence,
		PublishedAt: p.now().UTC(),
		Document:    raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.rdb.Publish(ctx, SnapshotChannel(tripID), string(data)).Err(); err != nil {
		p.metrics.snapshots.WithLabelValues(resultPublishError).Inc()
		return nil, fmt.Errorf("redis publish: %w", err)
	}

	p.metrics.snapshots.WithLabelValues(resultPublished).Inc()
	p.log.Debugw("Published trip snapshot", "tripID", tripID, "sequence", sequence, "envelopeID", env.ID)
	return env, nil
}
