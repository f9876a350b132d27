package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/nomad-itinerary/config"
	"github.com/NomadCrew/nomad-itinerary/db"
	"github.com/NomadCrew/nomad-itinerary/handlers"
	"github.com/NomadCrew/nomad-itinerary/internal/cache"
	"github.com/NomadCrew/nomad-itinerary/internal/events"
	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/NomadCrew/nomad-itinerary/internal/store"
	"github.com/NomadCrew/nomad-itinerary/internal/store/postgres"
	"github.com/NomadCrew/nomad-itinerary/internal/store/supabase"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

//go:generate swag init --parseDependency --parseInternal -g main.go -o docs

// @title Nomad Itinerary API
// @version 1.0
// @description Read-only access to normalized trips and their cost rollups.
// @BasePath /
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	// APP_CONFIG_ENV selects a config/config.<env>.yaml file instead of the environment.
	var cfg *config.Config
	var err error
	if env := os.Getenv("APP_CONFIG_ENV"); env != "" {
		cfg, err = config.LoadConfigForEnv(env)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Document store
	var (
		docs   store.TripDocumentStore
		writer store.TripDocumentWriter
		dbPing service.DBPinger
	)
	switch cfg.Store.Backend {
	case config.StorePostgres:
		if cfg.Database.RunMigrations {
			if err := db.RunMigrations(cfg.Database.URL()); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
		pool, err := config.NewPgxPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		pgStore := postgres.NewTripDocumentStore(pool)
		docs, writer, dbPing = pgStore, pgStore, pool
		log.Infow("Using Postgres trip document store",
			"database", config.MaskSensitiveURL(cfg.Database.URL()))
	case config.StoreSupabase:
		client, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		if err != nil {
			log.Fatalf("Failed to create Supabase client: %v", err)
		}
		docs = supabase.NewTripDocumentStore(client, cfg.Supabase.Table)
		log.Infow("Using Supabase trip document store",
			"url", cfg.Supabase.URL,
			"table", cfg.Supabase.Table,
			"serviceKey", logger.MaskSensitiveString(cfg.Supabase.ServiceKey, 4, 4))
	default:
		log.Fatalf("Unsupported store backend %q", cfg.Store.Backend)
	}

	assembler := trips.NewAssembler()

	// Redis-backed cache and snapshot listener
	var (
		rdb              *redis.Client
		tripCache        service.TripCache
		snapshotHandlers []events.SnapshotHandler
	)
	if cfg.NeedsRedis() {
		rdb, err = config.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
	}
	if cfg.Cache.Enabled {
		c := cache.NewTripCache(rdb, assembler, cfg.Cache.KeyPrefix, cfg.Cache.TTL())
		tripCache = c
		snapshotHandlers = append(snapshotHandlers, events.SnapshotHandlerFunc(c.HandleSnapshot))
	}
	if cfg.Snapshots.Enabled {
		if cfg.Snapshots.Persist && writer != nil {
			snapshotHandlers = append(snapshotHandlers, events.PersistHandler(writer))
		}
		listener := events.NewSnapshotListener(rdb, assembler, events.ChainHandlers(snapshotHandlers...), events.ListenerConfig{
			Pattern:         cfg.Snapshots.ChannelPattern,
			BufferSize:      cfg.Snapshots.BufferSize,
			MaxTrackedTrips: cfg.Snapshots.MaxTrackedTrips,
		})
		go func() {
			if err := listener.Run(ctx); err != nil {
				log.Errorw("Snapshot listener stopped", "error", err)
			}
		}()
	}

	tripService := service.NewTripService(docs, assembler, tripCache)
	healthService := service.NewHealthService(dbPing, rdb, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		TripHandler:   handlers.NewTripHandler(tripService),
		HealthHandler: handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shut down", "error", err)
	}
}
