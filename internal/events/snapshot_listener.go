package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListenerConfig holds configuration for SnapshotListener
type ListenerConfig struct {
	Pattern    string
	BufferSize int
	// MaxTrackedTrips bounds the sequence table. When full, the trip with the
	// lowest sequence is forgotten to make room.
	MaxTrackedTrips int
}

// DefaultListenerConfig returns default configuration values
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		Pattern:         DefaultSnapshotPattern,
		BufferSize:      100,
		MaxTrackedTrips: 10000,
	}
}

// SnapshotListener assembles trip snapshots received over Redis pub/sub and
// hands them to a SnapshotHandler. Pub/sub gives no ordering guarantee across
// reconnects, so the listener keeps the highest sequence seen per trip and
// drops anything at or below it.
type SnapshotListener struct {
	rdb       *redis.Client
	assembler *trips.Assembler
	handler   SnapshotHandler
	config    ListenerConfig
	log       *zap.SugaredLogger
	metrics   *SnapshotMetrics

	mu     sync.Mutex
	latest map[string]int64
}

// NewSnapshotListener creates a listener. handler may be nil, in which case
// snapshots are only assembled and counted.
func NewSnapshotListener(rdb *redis.Client, assembler *trips.Assembler, handler SnapshotHandler, cfg ...ListenerConfig) *SnapshotListener {
	config := DefaultListenerConfig()
	if len(cfg) > 0 {
		config = cfg[0]
	}
	if config.Pattern == "" {
		config.Pattern = DefaultSnapshotPattern
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultListenerConfig().BufferSize
	}
	if config.MaxTrackedTrips <= 0 {
		config.MaxTrackedTrips = DefaultListenerConfig().MaxTrackedTrips
	}

	return &SnapshotListener{
		rdb:       rdb,
		assembler: assembler,
		handler:   handler,
		config:    config,
		log:       logger.GetLogger().Named("snapshot_listener"),
		metrics:   getSnapshotMetrics(),
		latest:    make(map[string]int64),
	}
}

// Run subscribes and processes snapshots until ctx is cancelled. It returns
// nil on cancellation and an error if the subscription cannot be established
// or is closed underneath it.
func (l *SnapshotListener) Run(ctx context.Context) error {
	pubsub := l.rdb.PSubscribe(ctx, l.config.Pattern)
	defer func() {
		if err := pubsub.Close(); err != nil {
			l.log.Errorw("Error closing snapshot subscription", "error", err)
		}
	}()

	// Wait for the subscription confirmation so publish-after-Run is never lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("psubscribe %s: %w", l.config.Pattern, err)
	}

	l.metrics.subscribed.Set(1)
	defer l.metrics.subscribed.Set(0)
	l.log.Infow("Snapshot listener subscribed", "pattern", l.config.Pattern)

	ch := pubsub.Channel(redis.WithChannelSize(l.config.BufferSize))
	for {
		select {
		case <-ctx.Done():
			l.log.Infow("Snapshot listener stopping", "reason", ctx.Err())
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("snapshot subscription closed")
			}
			l.handleMessage(ctx, msg.Channel, msg.Payload)
		}
	}
}

// handleMessage processes one pub/sub payload and returns the recorded result.
func (l *SnapshotListener) handleMessage(ctx context.Context, channel, payload string) string {
	env, err := decodeEnvelope(channel, payload)
	if err != nil {
		return l.record(resultMalformed, func() {
			l.log.Warnw("Dropping malformed snapshot", "channel", channel, "error", err)
		})
	}

	// Decode before claiming the sequence so a redelivery can replace a
	// payload that was unreadable.
	doc, err := document.Decode(env.Document)
	if err != nil {
		return l.record(resultMalformed, func() {
			l.log.Warnw("Dropping snapshot with undecodable document", "tripID", env.TripID, "error", err)
		})
	}

	if !l.accept(env.TripID, env.Sequence) {
		return l.record(resultStale, func() {
			l.log.Debugw("Dropping stale snapshot",
				"tripID", env.TripID,
				"sequence", env.Sequence)
		})
	}

	res, assembleErr := l.assembler.Assemble(doc)
	result := resultAssembled
	if assembleErr != nil {
		result = resultRejected
	}

	if l.handler != nil {
		snap := Snapshot{Envelope: env, Document: doc, Result: res, Err: assembleErr}
		if err := l.handler.HandleSnapshot(ctx, snap); err != nil {
			l.log.Errorw("Snapshot handler failed",
				"tripID", env.TripID,
				"sequence", env.Sequence,
				"error", err)
			result = resultHandlerError
		}
	}

	return l.record(result, nil)
}

func (l *SnapshotListener) record(result string, logFn func()) string {
	if logFn != nil {
		logFn()
	}
	l.metrics.snapshots.WithLabelValues(result).Inc()
	return result
}

// accept claims sequence for tripID if it is newer than anything seen so far.
func (l *SnapshotListener) accept(tripID string, sequence int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	last, ok := l.latest[tripID]
	if ok && sequence <= last {
		return false
	}
	if !ok && len(l.latest) >= l.config.MaxTrackedTrips {
		l.evictOldest()
	}
	l.latest[tripID] = sequence
	return true
}

// evictOldest forgets the trip whose last snapshot has the lowest sequence.
// Callers hold l.mu.
func (l *SnapshotListener) evictOldest() {
	var (
		oldestID  string
		oldestSeq int64
		found     bool
	)
	for id, seq := range l.latest {
		if !found || seq < oldestSeq {
			oldestID, oldestSeq, found = id, seq, true
		}
	}
	if found {
		delete(l.latest, oldestID)
	}
}

// TrackedTrips reports how many trips have a remembered sequence.
func (l *SnapshotListener) TrackedTrips() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.latest)
}

// LatestSequence reports the highest sequence accepted for tripID.
func (l *SnapshotListener) LatestSequence(tripID string) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	seq, ok := l.latest[tripID]
	return seq, ok
}
