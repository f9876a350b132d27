package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-itinerary/db"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/events"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/internal/store/postgres"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// identity pulls the keys a stored or published document is filed under.
// Documents lacking either are skipped; the assembler would reject them anyway.
func identity(doc document.Fragment) (id, ownerID string, ok bool) {
	r := document.NewReader(doc, "")
	id, _ = r.String("id", "")
	ownerID, _ = r.FirstString("", "ownerId", "userId")
	return id, ownerID, id != "" && ownerID != ""
}

// sequenceBase orders documents from one run after everything from earlier runs.
func sequenceBase() int64 {
	return time.Now().UnixNano()
}

func publishSnapshots(ctx context.Context, addr string, docs []document.Fragment) error {
	log := logger.GetLogger().Named("tripcheck")

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = rdb.Close() }()
	publisher := events.NewSnapshotPublisher(rdb)

	base := sequenceBase()
	published := 0
	for i, doc := range docs {
		id, ownerID, ok := identity(doc)
		if !ok {
			log.Warnw("Skipping document without id or owner", "index", i)
			continue
		}
		if _, err := publisher.Publish(ctx, id, ownerID, base+int64(i), doc); err != nil {
			return fmt.Errorf("publish document %d: %w", i, err)
		}
		published++
	}
	log.Infow("Published snapshots", "count", published, "redis", addr)
	return nil
}

func seedDocuments(ctx context.Context, dbURL string, docs []document.Fragment) error {
	log := logger.GetLogger().Named("tripcheck")

	if err := db.RunMigrations(dbURL); err != nil {
		return fmt.Errorf("migrate %s: %w", logger.MaskConnectionString(dbURL), err)
	}
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	log.Infow("Seeding trip documents", "database", logger.MaskConnectionString(dbURL))
	return seedInto(ctx, postgres.NewTripDocumentStore(pool), docs, sequenceBase(), log.Infow)
}

func seedInto(ctx context.Context, w store.TripDocumentWriter, docs []document.Fragment, base int64, logf func(string, ...any)) error {
	seeded := 0
	for i, doc := range docs {
		id, ownerID, ok := identity(doc)
		if !ok {
			continue
		}
		err := w.SaveTripDocument(ctx, id, ownerID, base+int64(i), doc)
		if errors.Is(err, store.ErrStaleDocument) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed document %s: %w", id, err)
		}
		seeded++
	}
	logf("Seeded trip documents", "count", seeded)
	return nil
}
