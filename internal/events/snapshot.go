package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
)

// SnapshotChannelPrefix is the Redis channel namespace for trip document snapshots.
const SnapshotChannelPrefix = "trips:snapshots:"

// DefaultSnapshotPattern subscribes to every trip's snapshot channel.
const DefaultSnapshotPattern = SnapshotChannelPrefix + "*"

// SnapshotChannel returns the channel carrying snapshots for one trip.
func SnapshotChannel(tripID string) string {
	return SnapshotChannelPrefix + tripID
}

// tripIDFromChannel is the inverse of SnapshotChannel.
func tripIDFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, SnapshotChannelPrefix) {
		return "", false
	}
	id := channel[len(SnapshotChannelPrefix):]
	return id, id != ""
}

// SnapshotEnvelope wraps a full trip document as delivered over pub/sub.
// Sequence increases with every write to the same trip.
type SnapshotEnvelope struct {
	ID          string          `json:"id"`
	TripID      string          `json:"tripId"`
	OwnerID     string          `json:"ownerId,omitempty"`
	Sequence    int64           `json:"sequence"`
	PublishedAt time.Time       `json:"publishedAt"`
	Document    json.RawMessage `json:"document"`
}

// Snapshot is a received envelope with its decoded document and assembly result.
// Result is never nil; rejected documents carry trips.StateRejected.
type Snapshot struct {
	Envelope SnapshotEnvelope
	Document document.Fragment
	Result   *trips.Result
	Err      error
}

// SnapshotHandler consumes snapshots accepted by the listener.
type SnapshotHandler interface {
	HandleSnapshot(ctx context.Context, snap Snapshot) error
}

// SnapshotHandlerFunc adapts a function to SnapshotHandler.
type SnapshotHandlerFunc func(ctx context.Context, snap Snapshot) error

func (f SnapshotHandlerFunc) HandleSnapshot(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// ChainHandlers runs handlers in order and returns the first error after running all of them.
func ChainHandlers(handlers ...SnapshotHandler) SnapshotHandler {
	return SnapshotHandlerFunc(func(ctx context.Context, snap Snapshot) error {
		var first error
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h.HandleSnapshot(ctx, snap); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}

func decodeEnvelope(channel, payload string) (SnapshotEnvelope, error) {
	var env SnapshotEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return env, fmt.Errorf("unmarshal snapshot envelope: %w", err)
	}
	if env.TripID == "" {
		return env, fmt.Errorf("snapshot envelope without tripId")
	}
	if id, ok := tripIDFromChannel(channel); ok && id != env.TripID {
		return env, fmt.Errorf("snapshot for trip %s published on channel %s", env.TripID, channel)
	}
	if len(env.Document) == 0 {
		return env, fmt.Errorf("snapshot envelope without document")
	}
	return env, nil
}
