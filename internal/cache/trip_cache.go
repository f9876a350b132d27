// Package cache keeps assembled trips in Redis so repeated reads skip the
// document store. Entries hold the current-shape encoding and are
// re-assembled on read, so a cached trip is always a valid trip.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/events"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces cache entries.
const DefaultKeyPrefix = "trips:assembled:"

// TripCache stores encoded trips with a TTL.
type TripCache struct {
	rdb       *redis.Client
	assembler *trips.Assembler
	prefix    string
	ttl       time.Duration
	log       *zap.SugaredLogger
}

// NewTripCache creates a cache. An empty prefix uses DefaultKeyPrefix.
func NewTripCache(rdb *redis.Client, assembler *trips.Assembler, prefix string, ttl time.Duration) *TripCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &TripCache{
		rdb:       rdb,
		assembler: assembler,
		prefix:    prefix,
		ttl:       ttl,
		log:       logger.GetLogger().Named("trip_cache"),
	}
}

func (c *TripCache) key(tripID string) string {
	return c.prefix + tripID
}

// Get returns the cached trip. A miss, or an entry that no longer assembles,
// reports ok=false; the bad entry is evicted.
func (c *TripCache) Get(ctx context.Context, tripID string) (*types.Trip, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(tripID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", tripID, err)
	}

	doc, err := document.Decode(raw)
	if err == nil {
		var res *trips.Result
		res, err = c.assembler.Assemble(doc)
		if err == nil {
			return res.Trip, true, nil
		}
	}

	c.log.Warnw("Evicting unusable cache entry", "tripID", tripID, "error", err)
	if delErr := c.rdb.Del(ctx, c.key(tripID)).Err(); delErr != nil {
		c.log.Errorw("Failed to evict cache entry", "tripID", tripID, "error", delErr)
	}
	return nil, false, nil
}

// Set stores trip under its id.
func (c *TripCache) Set(ctx context.Context, trip *types.Trip) error {
	raw, err := document.Encode(trips.EncodeTrip(trip))
	if err != nil {
		return fmt.Errorf("encode trip %s: %w", trip.ID, err)
	}
	if err := c.rdb.Set(ctx, c.key(trip.ID), string(raw), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", trip.ID, err)
	}
	return nil
}

// Invalidate removes a cached trip.
func (c *TripCache) Invalidate(ctx context.Context, tripID string) error {
	if err := c.rdb.Del(ctx, c.key(tripID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", tripID, err)
	}
	return nil
}

// HandleSnapshot refreshes the entry for a received snapshot: valid trips are
// stored, rejected documents evict whatever was cached.
func (c *TripCache) HandleSnapshot(ctx context.Context, snap events.Snapshot) error {
	if snap.Result == nil || snap.Result.Trip == nil {
		return c.Invalidate(ctx, snap.Envelope.TripID)
	}
	return c.Set(ctx, snap.Result.Trip)
}
