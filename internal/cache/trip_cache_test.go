package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/events"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

const ttl = 5 * time.Minute

func assembledTrip(t *testing.T) *types.Trip {
	t.Helper()
	res, err := trips.NewAssembler().Assemble(document.Fragment{
		"id":           "trip-1",
		"ownerId":      "user-1",
		"destinations": []any{"Tokyo, Japan", "Kyoto, Japan"},
		"startDate":    "2025-03-01",
		"endDate":      "2025-03-10",
		"createdAt":    "2025-01-10T12:00:00Z",
		"status":       "processing",
	})
	require.NoError(t, err)
	return res.Trip
}

func encoded(t *testing.T, trip *types.Trip) string {
	t.Helper()
	raw, err := document.Encode(trips.EncodeTrip(trip))
	require.NoError(t, err)
	return string(raw)
}

func TestTripCache_SetThenGet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewTripCache(rdb, trips.NewAssembler(), "", ttl)
	trip := assembledTrip(t)
	value := encoded(t, trip)

	mock.ExpectSet("trips:assembled:trip-1", value, ttl).SetVal("OK")
	mock.ExpectGet("trips:assembled:trip-1").SetVal(value)

	require.NoError(t, c.Set(context.Background(), trip))

	got, ok, err := c.Get(context.Background(), "trip-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, trip.Destinations, got.Destinations)
	assert.Equal(t, types.TripStatusInProgress, got.Status)
	assert.True(t, trip.StartDate.Equal(got.StartDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripCache_Get(t *testing.T) {
	key := "custom:trip-1"

	tests := []struct {
		name    string
		setup   func(mock redismock.ClientMock)
		wantOK  bool
		wantErr bool
	}{
		{
			name:  "miss",
			setup: func(mock redismock.ClientMock) { mock.ExpectGet(key).RedisNil() },
		},
		{
			name:    "redis failure",
			setup:   func(mock redismock.ClientMock) { mock.ExpectGet(key).SetErr(errors.New("timeout")) },
			wantErr: true,
		},
		{
			name: "corrupt entry is evicted",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal("not json")
				mock.ExpectDel(key).SetVal(1)
			},
		},
		{
			name: "entry that no longer assembles is evicted",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(`{"id":"trip-1"}`)
				mock.ExpectDel(key).SetVal(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rdb, mock := redismock.NewClientMock()
			c := NewTripCache(rdb, trips.NewAssembler(), "custom:", ttl)
			tt.setup(mock)

			trip, ok, err := c.Get(context.Background(), "trip-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			assert.Nil(t, trip)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripCache_HandleSnapshot(t *testing.T) {
	t.Run("valid snapshot refreshes entry", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := NewTripCache(rdb, trips.NewAssembler(), "", ttl)
		trip := assembledTrip(t)

		mock.ExpectSet("trips:assembled:trip-1", encoded(t, trip), ttl).SetVal("OK")

		err := c.HandleSnapshot(context.Background(), events.Snapshot{
			Envelope: events.SnapshotEnvelope{TripID: "trip-1"},
			Result:   &trips.Result{State: trips.StateValidWithoutRecommendation, Trip: trip},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejected snapshot evicts entry", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := NewTripCache(rdb, trips.NewAssembler(), "", ttl)

		mock.ExpectDel("trips:assembled:trip-1").SetVal(1)

		err := c.HandleSnapshot(context.Background(), events.Snapshot{
			Envelope: events.SnapshotEnvelope{TripID: "trip-1"},
			Result:   &trips.Result{State: trips.StateRejected},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
