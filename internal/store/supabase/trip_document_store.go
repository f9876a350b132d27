// Package supabase reads trip documents through the Supabase PostgREST API,
// for deployments where the planner writes straight to a hosted table.
package supabase

import (
	"context"
	"fmt"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const dataColumn = "data"

// TripDocumentStore reads rows shaped {id, owner_id, data jsonb, updated_at}.
type TripDocumentStore struct {
	client *supabase.Client
	table  string
}

var _ store.TripDocumentStore = (*TripDocumentStore)(nil)

// NewTripDocumentStore creates a store that queries table through client.
func NewTripDocumentStore(client *supabase.Client, table string) *TripDocumentStore {
	return &TripDocumentStore{client: client, table: table}
}

// NewClient builds a service-role Supabase client.
func NewClient(url, serviceKey string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}

// GetTripDocument loads one document by id. The PostgREST client has no
// context support, so ctx is only checked before the request.
func (s *TripDocumentStore) GetTripDocument(ctx context.Context, id string) (document.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, _, err := s.client.From(s.table).
		Select(dataColumn, "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get trip document %s: %w", id, err)
	}

	docs, err := decodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("trip document %s: %w", id, err)
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return docs[0], nil
}

// ListTripDocuments loads an owner's documents, most recently updated first.
func (s *TripDocumentStore) ListTripDocuments(ctx context.Context, ownerID string) ([]document.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, _, err := s.client.From(s.table).
		Select(dataColumn, "", false).
		Eq("owner_id", ownerID).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list trip documents for owner %s: %w", ownerID, err)
	}

	docs, err := decodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("owner %s: %w", ownerID, err)
	}
	return docs, nil
}

// decodeRows unwraps the data column of each row. Rows whose data is not an
// object are skipped and logged.
func decodeRows(body []byte) ([]document.Fragment, error) {
	rows, skipped, err := document.DecodeList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidDocument, err)
	}
	if len(skipped) > 0 {
		logger.GetLogger().Warnw("Skipping trip document rows that are not objects", "rows", skipped)
	}

	docs := make([]document.Fragment, 0, len(rows))
	for i, row := range rows {
		doc, ok := document.AsFragment(row[dataColumn])
		if !ok {
			logger.GetLogger().Warnw("Skipping trip document row without object data", "row", i)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
