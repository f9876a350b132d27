package service

import (
	"context"
	stderrors "errors"

	apperrors "github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/costs"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"go.uber.org/zap"
)

// TripService reads stored trip documents and serves them as assembled trips.
type TripService interface {
	GetTrip(ctx context.Context, tripID string) (*types.Trip, error)
	ListOwnerTrips(ctx context.Context, ownerID string) (*OwnerTrips, error)
	GetTripCosts(ctx context.Context, tripID string) (*TripCosts, error)
}

// TripCache is the read-through cache used by TripServiceImpl.
type TripCache interface {
	Get(ctx context.Context, tripID string) (*types.Trip, bool, error)
	Set(ctx context.Context, trip *types.Trip) error
}

// OwnerTrips lists an owner's valid trips. Rejected counts documents that
// could not be assembled and were left out.
type OwnerTrips struct {
	Trips    []*types.Trip `json:"trips"`
	Rejected int           `json:"rejected"`
}

// TripCosts is the cost rollup of one trip. Preparing is set while the trip
// has no detailed itinerary yet, in which case Rollup is nil.
type TripCosts struct {
	TripID    string        `json:"tripId"`
	Preparing bool          `json:"preparing"`
	Rollup    *costs.Rollup `json:"rollup,omitempty"`
	Display   string        `json:"display,omitempty"`
}

// TripServiceImpl implements TripService.
type TripServiceImpl struct {
	store     store.TripDocumentStore
	assembler *trips.Assembler
	cache     TripCache
	log       *zap.SugaredLogger
}

// NewTripService creates a TripService. cache may be nil.
func NewTripService(docs store.TripDocumentStore, assembler *trips.Assembler, cache TripCache) *TripServiceImpl {
	return &TripServiceImpl{
		store:     docs,
		assembler: assembler,
		cache:     cache,
		log:       logger.GetLogger().Named("TripService"),
	}
}

// GetTrip returns the assembled trip, from cache when possible.
func (s *TripServiceImpl) GetTrip(ctx context.Context, tripID string) (*types.Trip, error) {
	if tripID == "" {
		return nil, apperrors.ValidationFailed("invalid trip id", "trip id is required")
	}

	if s.cache != nil {
		trip, ok, err := s.cache.Get(ctx, tripID)
		if err != nil {
			s.log.Warnw("Trip cache unavailable, reading from store", "tripID", tripID, "error", err)
		} else if ok {
			return trip, nil
		}
	}

	doc, err := s.store.GetTripDocument(ctx, tripID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Trip", tripID)
		}
		s.log.Errorw("Failed to load trip document", "tripID", tripID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	res, err := s.assembler.Assemble(doc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, res.Trip); err != nil {
			s.log.Warnw("Failed to cache trip", "tripID", tripID, "error", err)
		}
	}
	return res.Trip, nil
}

// ListOwnerTrips assembles every document stored for ownerID, newest first.
func (s *TripServiceImpl) ListOwnerTrips(ctx context.Context, ownerID string) (*OwnerTrips, error) {
	if ownerID == "" {
		return nil, apperrors.ValidationFailed("invalid owner id", "owner id is required")
	}

	docs, err := s.store.ListTripDocuments(ctx, ownerID)
	if err != nil {
		s.log.Errorw("Failed to list trip documents", "ownerID", ownerID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	batch := s.assembler.AssembleBatch(docs)
	return &OwnerTrips{
		Trips:    batch.Trips(),
		Rejected: len(batch.Rejections),
	}, nil
}

// GetTripCosts rolls up the costs of the trip's detailed itinerary.
func (s *TripServiceImpl) GetTripCosts(ctx context.Context, tripID string) (*TripCosts, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	rollup, ok := costs.RollupTrip(trip)
	if !ok {
		return &TripCosts{TripID: trip.ID, Preparing: true}, nil
	}
	return &TripCosts{
		TripID:  trip.ID,
		Rollup:  rollup,
		Display: rollup.GrandTotalCost().DisplayText(),
	}, nil
}
