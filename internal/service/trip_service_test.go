package service_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	store_mocks "github.com/NomadCrew/nomad-itinerary/internal/store/mocks"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func init() {
	logger.IsTest = true
}

// fakeCache is an in-memory TripCache.
type fakeCache struct {
	trips  map[string]*types.Trip
	getErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{trips: map[string]*types.Trip{}}
}

func (c *fakeCache) Get(_ context.Context, tripID string) (*types.Trip, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	t, ok := c.trips[tripID]
	return t, ok, nil
}

func (c *fakeCache) Set(_ context.Context, trip *types.Trip) error {
	c.sets++
	c.trips[trip.ID] = trip
	return nil
}

func baseDocument(id string) document.Fragment {
	return document.Fragment{
		"id":           id,
		"ownerId":      "user-1",
		"destinations": []any{"Lisbon, Portugal"},
		"startDate":    "2025-09-01",
		"endDate":      "2025-09-08",
		"createdAt":    "2025-08-01T12:00:00Z",
	}
}

func documentWithItinerary(id string) document.Fragment {
	doc := baseDocument(id)
	doc["recommendation"] = map[string]any{
		"id":              "rec-1",
		"destinationName": "Lisbon, Portugal",
		"overview":        "A week in Lisbon",
		"itinerary": map[string]any{
			"id": "it-1",
			"flights": []any{
				map[string]any{
					"cost": map[string]any{"paymentType": "cash", "cashAmount": 450},
					"segments": []any{
						map[string]any{"airline": "TAP", "flightNumber": "TP202", "departureAirport": "JFK", "arrivalAirport": "LIS"},
					},
				},
			},
			"dailyPlans": []any{},
		},
	}
	return doc
}

// TripServiceTestSuite covers TripServiceImpl against a mocked document store.
type TripServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store_mocks.TripDocumentRepository
	cache   *fakeCache
	service *service.TripServiceImpl
}

func (s *TripServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = new(store_mocks.TripDocumentRepository)
	s.cache = newFakeCache()
	s.service = service.NewTripService(s.store, trips.NewAssembler(), s.cache)
}

func TestTripService(t *testing.T) {
	suite.Run(t, new(TripServiceTestSuite))
}

func (s *TripServiceTestSuite) TestGetTrip_FromStoreThenCache() {
	s.store.On("GetTripDocument", mock.Anything, "trip-1").Return(baseDocument("trip-1"), nil).Once()

	trip, err := s.service.GetTrip(s.ctx, "trip-1")
	s.Require().NoError(err)
	s.Equal("trip-1", trip.ID)
	s.Equal(1, s.cache.sets)

	again, err := s.service.GetTrip(s.ctx, "trip-1")
	s.Require().NoError(err)
	s.Same(trip, again)
	s.store.AssertExpectations(s.T())
}

func (s *TripServiceTestSuite) TestGetTrip_CacheFailureFallsBackToStore() {
	s.cache.getErr = errors.New("redis down")
	s.store.On("GetTripDocument", mock.Anything, "trip-1").Return(baseDocument("trip-1"), nil)

	trip, err := s.service.GetTrip(s.ctx, "trip-1")
	s.Require().NoError(err)
	s.Equal("trip-1", trip.ID)
}

func (s *TripServiceTestSuite) TestGetTrip_Errors() {
	rejected := baseDocument("trip-bad")
	delete(rejected, "destinations")

	tests := []struct {
		name     string
		tripID   string
		doc      document.Fragment
		storeErr error
		wantType apperrors.ErrorType
	}{
		{name: "empty id", tripID: "", wantType: apperrors.ValidationError},
		{name: "not found", tripID: "missing", storeErr: store.ErrNotFound, wantType: apperrors.NotFoundError},
		{name: "store failure", tripID: "trip-1", storeErr: errors.New("connection reset"), wantType: apperrors.DatabaseError},
		{name: "rejected document", tripID: "trip-bad", doc: rejected, wantType: apperrors.RejectedError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.tripID != "" {
				s.store.On("GetTripDocument", mock.Anything, tt.tripID).Return(tt.doc, tt.storeErr)
			}

			trip, err := s.service.GetTrip(s.ctx, tt.tripID)
			s.Nil(trip)
			s.Require().Error(err)
			s.True(apperrors.IsType(err, tt.wantType), "got %v", err)
			s.Zero(s.cache.sets)
		})
	}
}

func (s *TripServiceTestSuite) TestListOwnerTrips() {
	rejected := baseDocument("trip-bad")
	delete(rejected, "startDate")
	docs := []document.Fragment{baseDocument("trip-1"), rejected, baseDocument("trip-2")}
	s.store.On("ListTripDocuments", mock.Anything, "user-1").Return(docs, nil)

	out, err := s.service.ListOwnerTrips(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(out.Trips, 2)
	s.Equal("trip-1", out.Trips[0].ID)
	s.Equal("trip-2", out.Trips[1].ID)
	s.Equal(1, out.Rejected)
}

func (s *TripServiceTestSuite) TestListOwnerTrips_Errors() {
	_, err := s.service.ListOwnerTrips(s.ctx, "")
	s.True(apperrors.IsType(err, apperrors.ValidationError))

	s.store.On("ListTripDocuments", mock.Anything, "user-1").Return(nil, errors.New("timeout"))
	_, err = s.service.ListOwnerTrips(s.ctx, "user-1")
	s.True(apperrors.IsType(err, apperrors.DatabaseError))
}

func (s *TripServiceTestSuite) TestGetTripCosts() {
	s.Run("preparing without itinerary", func() {
		s.SetupTest()
		s.store.On("GetTripDocument", mock.Anything, "trip-1").Return(baseDocument("trip-1"), nil)

		got, err := s.service.GetTripCosts(s.ctx, "trip-1")
		s.Require().NoError(err)
		s.True(got.Preparing)
		s.Nil(got.Rollup)
	})

	s.Run("rolls up the itinerary", func() {
		s.SetupTest()
		s.store.On("GetTripDocument", mock.Anything, "trip-2").Return(documentWithItinerary("trip-2"), nil)

		got, err := s.service.GetTripCosts(s.ctx, "trip-2")
		s.Require().NoError(err)
		s.False(got.Preparing)
		s.Require().NotNil(got.Rollup)
		s.True(decimal.NewFromInt(450).Equal(got.Rollup.GrandTotal), "grand total %s", got.Rollup.GrandTotal)
		s.Equal("$450", got.Display)
	})
}
