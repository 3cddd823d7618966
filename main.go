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

	"ms-booking/internal/admin"
	admin_api "ms-booking/internal/admin/api"
	"ms-booking/internal/analytics"
	"ms-booking/internal/auth"
	"ms-booking/internal/booking"
	booking_api "ms-booking/internal/booking/api"
	booking_db "ms-booking/internal/booking/db"
	"ms-booking/internal/catalog"
	catalog_api "ms-booking/internal/catalog/api"
	"ms-booking/internal/config"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/kafka"
	"ms-booking/internal/logger"
	"ms-booking/internal/support"
	support_api "ms-booking/internal/support/api"
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

// newRouter registers everything under a single /api route. Public
// catalog and support endpoints come first, then the JWT-protected
// booking group, then the admin-only group inside it.
func newRouter(
	catalogHandler *catalog_api.Handler,
	supportHandler *support_api.Handler,
	bookingHandler *booking_api.Handler,
	adminHandler *admin_api.Handler,
	log *logger.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		// --- Public Routes ---
		catalogHandler.RegisterRoutes(r)
		supportHandler.RegisterPublicRoutes(r)
		log.Info("ROUTER", "Public catalog and support endpoints registered under /api")

		// --- Protected Routes ---
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware())
			log.Info("AUTH", "JWT middleware applied to protected API routes")

			bookingHandler.RegisterRoutes(r)
			log.Info("ROUTER", "Booking routes registered under /api/bookings")

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin())
				adminHandler.RegisterRoutes(r)
				supportHandler.RegisterAdminRoutes(r)
				log.Info("ROUTER", "Admin routes registered under /api/admin")
			})
		})
	})

	return r
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Booking Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	log.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	defer redisClient.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: "./migrations",
			AutoMigrate:   cfg.Database.AutoMigrate,
			SeedData:      cfg.Database.SeedData,
		}, log)
		if err := runner.RunMigrations(); err != nil {
			log.Fatal("MIGRATE", fmt.Sprintf("Migration failed: %v", err))
		}
		if err := runner.Close(); err != nil {
			log.Warn("MIGRATE", fmt.Sprintf("Failed to close migrator: %v", err))
		}
	}

	var kafkaProducer *kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
		kafkaProducer = kafka.NewProducer(cfg.Kafka.Brokers)
		log.Info("KAFKA", "Kafka producer initialized successfully")

		requiredTopics := []string{
			cfg.Kafka.Topics.BookingCreated,
			cfg.Kafka.Topics.BookingCancelled,
			cfg.Kafka.Topics.StatusChanged,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		defer kafkaProducer.Close()
	} else {
		log.Warn("KAFKA", "Kafka disabled, booking events will not be published")
	}

	catalogService := catalog.NewService(
		&catalog.Store{Bun: bunDB},
		catalog.NewCache(redisClient, cfg.Redis.CacheTTL),
		log,
	)

	var publisher booking.EventPublisher
	if kafkaProducer != nil {
		publisher = kafkaProducer
	}

	bookingStore := &booking_db.DB{Bun: bunDB}
	bookingService := booking.NewBookingService(
		bookingStore,
		catalogService,
		catalogService.Resolver(),
		publisher,
		log,
		booking.Topics{
			Created:   cfg.Kafka.Topics.BookingCreated,
			Cancelled: cfg.Kafka.Topics.BookingCancelled,
		},
	)

	var adminPublisher admin.EventPublisher
	if kafkaProducer != nil {
		adminPublisher = kafkaProducer
	}
	adminService := admin.NewService(bookingStore, adminPublisher, log, cfg.Kafka.Topics.StatusChanged)
	analyticsService := analytics.NewService(bunDB, bookingStore)
	supportService := support.NewService(&support.Store{Bun: bunDB}, log)

	bookingHandler := &booking_api.Handler{BookingService: bookingService, Logger: log}
	catalogHandler := &catalog_api.Handler{Catalog: catalogService, Logger: log}
	adminHandler := &admin_api.Handler{
		AdminService: adminService,
		Analytics:    analyticsService,
		Catalog:      catalogService,
		Logger:       log,
	}
	supportHandler := &support_api.Handler{SupportService: supportService, Logger: log}

	log.Info("HTTP", "Setting up router and middleware")
	r := newRouter(catalogHandler, supportHandler, bookingHandler, adminHandler, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Booking Service running on %s", cfg.Server.Port))
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
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	}

	log.Info("APP", "Booking Service stopped")
}
