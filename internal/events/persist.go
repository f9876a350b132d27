package events

import (
	"context"
	"errors"

	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/logger"
)

// PersistHandler writes every accepted snapshot, valid or rejected, through to
// the document store. A stale write means another replica already stored a
// newer snapshot and is not an error.
func PersistHandler(writer store.TripDocumentWriter) SnapshotHandler {
	log := logger.GetLogger().Named("snapshot_persist")

	return SnapshotHandlerFunc(func(ctx context.Context, snap Snapshot) error {
		ownerID := snap.Envelope.OwnerID
		if ownerID == "" && snap.Result != nil && snap.Result.Trip != nil {
			ownerID = snap.Result.Trip.OwnerID
		}

		err := writer.SaveTripDocument(ctx, snap.Envelope.TripID, ownerID, snap.Envelope.Sequence, snap.Document)
		if errors.Is(err, store.ErrStaleDocument) {
			log.Debugw("Skipped persisting stale snapshot",
				"tripID", snap.Envelope.TripID,
				"sequence", snap.Envelope.Sequence)
			return nil
		}
		return err
	})
}
