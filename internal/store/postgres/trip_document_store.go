package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the store needs. pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	getTripDocumentSQL = `SELECT data FROM trip_documents WHERE id = $1`

	listTripDocumentsSQL = `SELECT data FROM trip_documents
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id`

	saveTripDocumentSQL = `INSERT INTO trip_documents (id, owner_id, sequence, data, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET owner_id = EXCLUDED.owner_id, sequence = EXCLUDED.sequence,
			data = EXCLUDED.data, updated_at = now()
		WHERE trip_documents.sequence < EXCLUDED.sequence`
)

// TripDocumentStore keeps raw trip documents in a JSONB column.
type TripDocumentStore struct {
	db DBTX
}

var _ store.TripDocumentRepository = (*TripDocumentStore)(nil)

// NewTripDocumentStore creates a store backed by the given pool.
func NewTripDocumentStore(db DBTX) *TripDocumentStore {
	return &TripDocumentStore{db: db}
}

// GetTripDocument loads one document by id.
func (s *TripDocumentStore) GetTripDocument(ctx context.Context, id string) (document.Fragment, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, getTripDocumentSQL, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip document %s: %w", id, err)
	}

	doc, err := document.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("trip document %s: %w: %v", id, store.ErrInvalidDocument, err)
	}
	return doc, nil
}

// ListTripDocuments loads every document owned by ownerID. A row holding a
// non-object payload is skipped and logged so one corrupt row cannot hide the rest.
func (s *TripDocumentStore) ListTripDocuments(ctx context.Context, ownerID string) ([]document.Fragment, error) {
	log := logger.GetLogger()

	rows, err := s.db.Query(ctx, listTripDocumentsSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip documents for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	docs := make([]document.Fragment, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan trip document: %w", err)
		}
		doc, err := document.Decode(raw)
		if err != nil {
			log.Warnw("Skipping undecodable trip document", "ownerID", ownerID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip documents: %w", err)
	}
	return docs, nil
}

// SaveTripDocument upserts a document snapshot. A sequence equal to or older
// than the stored one is stale and leaves the row untouched.
func (s *TripDocumentStore) SaveTripDocument(ctx context.Context, id, ownerID string, sequence int64, doc document.Fragment) error {
	raw, err := document.Encode(doc)
	if err != nil {
		return fmt.Errorf("trip document %s: %w", id, store.ErrInvalidDocument)
	}
	tag, err := s.db.Exec(ctx, saveTripDocumentSQL, id, ownerID, sequence, raw)
	if err != nil {
		return fmt.Errorf("failed to save trip document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip document %s sequence %d: %w", id, sequence, store.ErrStaleDocument)
	}
	return nil
}
