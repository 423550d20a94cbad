package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"eventboard/internal/auth"
	"eventboard/internal/catalog"
	"eventboard/internal/config"
	"eventboard/internal/database/migrations"
	"eventboard/internal/events"
	eventsdb "eventboard/internal/events/db"
	"eventboard/internal/events/event_api"
	"eventboard/internal/events/share"
	"eventboard/internal/kafka"
	"eventboard/internal/logger"
	"eventboard/internal/storage"
)

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func authMiddleware(cfg *config.Config, log *logger.Logger) func(http.Handler) http.Handler {
	if cfg.Auth.OIDCIssuer == "" {
		log.Warn("AUTH", "OIDC_ISSUER not set, falling back to unverified dev tokens")
		return auth.DevMiddleware()
	}

	middleware, err := auth.Middleware(cfg.Auth.OIDCIssuer)
	if err != nil {
		log.Fatal("AUTH", fmt.Sprintf("Failed to set up OIDC middleware: %v", err))
	}
	log.Info("AUTH", fmt.Sprintf("OIDC middleware configured for issuer %s", cfg.Auth.OIDCIssuer))
	return middleware
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Eventboard service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	defer redisClient.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
		if err := runner.Run(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		if version, err := runner.Version(); err == nil {
			log.Info("DATABASE", fmt.Sprintf("Schema at version %d", version))
		}
	}

	var producer *kafka.Producer
	switch {
	case !cfg.Kafka.Enabled || cfg.Kafka.MockMode:
		log.Warn("KAFKA", "Changefeed running in mock mode, no messages will be produced")
		producer = kafka.NewMockProducer()
	default:
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.AllTopics()); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Changefeed topics ensured successfully")
		}
	}
	defer producer.Close()

	imageStore := storage.NewS3Store(cfg.Storage)
	log.Info("STORAGE", fmt.Sprintf("Image store configured for bucket %s", cfg.Storage.Bucket))

	eventDB := &eventsdb.DB{Bun: bunDB}
	listingCache := catalog.NewCache(redisClient, cfg.Redis.CatalogTTL)
	catalogService := catalog.NewService(eventDB, listingCache, log)
	eventService := events.NewEventService(eventDB, imageStore, producer, listingCache, log)
	qrGenerator := share.NewGenerator(cfg.Server.PublicURL)

	handler := &event_api.Handler{
		EventService: eventService,
		Catalog:      catalogService,
		QR:           qrGenerator,
		Logger:       log,
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Get("/api/events", handler.ListEvents)
	r.Get("/api/events/{eventId}", handler.GetEvent)
	r.Get("/api/events/{eventId}/qr", handler.EventShareQR)
	log.Info("ROUTER", "Public catalog endpoints registered under /api/events")

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(cfg, log))

		r.Post("/api/events", handler.CreateEvent)
		r.Put("/api/events/{eventId}", handler.UpdateEvent)
		r.Delete("/api/events/{eventId}", handler.DeleteEvent)
		r.Get("/api/my/events", handler.MyEvents)
	})
	log.Info("ROUTER", "Protected event routes registered")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Eventboard service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Eventboard service shutdown complete")
	}
}
