package store

import (
	"context"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
)

// TripDocumentStore reads raw trip documents. Implementations return the
// stored JSON untouched; normalization happens in the trips assembler.
type TripDocumentStore interface {
	// GetTripDocument returns ErrNotFound when no document has the given id.
	GetTripDocument(ctx context.Context, id string) (document.Fragment, error)
	// ListTripDocuments returns an owner's documents, most recently updated first.
	ListTripDocuments(ctx context.Context, ownerID string) ([]document.Fragment, error)
}

// TripDocumentWriter persists raw trip documents, replacing any previous
// snapshot with the same id. A write whose sequence is lower than the stored
// one returns ErrStaleDocument and leaves the row untouched.
type TripDocumentWriter interface {
	SaveTripDocument(ctx context.Context, id, ownerID string, sequence int64, doc document.Fragment) error
}

// TripDocumentRepository is the full read/write surface used by the snapshot pipeline.
type TripDocumentRepository interface {
	TripDocumentStore
	TripDocumentWriter
}
