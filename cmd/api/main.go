package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/probationsupervision/appointments-api/docs"
	"github.com/probationsupervision/appointments-api/internal/auth"
	"github.com/probationsupervision/appointments-api/internal/clients/flipt"
	"github.com/probationsupervision/appointments-api/internal/clients/graph"
	"github.com/probationsupervision/appointments-api/internal/clients/notify"
	"github.com/probationsupervision/appointments-api/internal/config"
	"github.com/probationsupervision/appointments-api/internal/handlers"
	"github.com/probationsupervision/appointments-api/internal/logger"
	"github.com/probationsupervision/appointments-api/internal/middleware"
	"github.com/probationsupervision/appointments-api/internal/repositories"
	"github.com/probationsupervision/appointments-api/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Probation Supervision Appointments API
// @version 1.0
// @description Places supervision appointments in practitioners' Outlook calendars and sends SMS reminders

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Probation Supervision Appointments API")

	location, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logger.Logger.Fatal("Failed to load event timezone", zap.String("timezone", cfg.Calendar.Timezone), zap.Error(err))
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize clients
	ctx := context.Background()
	graphClient := graph.NewClient(ctx, graph.Credentials{
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		TokenURL:     cfg.Graph.TokenURL,
	}, cfg.Graph.BaseURL, cfg.Calendar.Timezone, logger.Logger)

	// Interfaces below must stay untyped nil when a client is not configured
	var (
		templateClient services.TemplateClient
		smsSender      services.SmsSender
		flagEvaluator  services.FlagEvaluator
	)
	if cfg.Notify.APIKey != "" {
		notifyClient, err := notify.NewClient(nil, cfg.Notify.APIKey, cfg.Notify.BaseURL, logger.Logger)
		if err != nil {
			logger.Logger.Fatal("Failed to create Notify client", zap.Error(err))
		}
		templateClient = notifyClient
		smsSender = notifyClient
	} else {
		logger.Logger.Warn("NOTIFY_API_KEY not set, SMS reminders are disabled")
	}
	if cfg.Flipt.URL != "" {
		flagEvaluator = flipt.NewClient(nil, cfg.Flipt.URL, cfg.Flipt.Token, cfg.Flipt.Namespace, logger.Logger)
	} else {
		logger.Logger.Warn("FLIPT_URL not set, feature flags evaluate to disabled")
	}

	// Initialize repositories
	mappingRepo := repositories.NewMappingRepository(db, logger.Logger)

	// Initialize services
	telemetry := services.NewTelemetryService(logger.Logger)
	translator := services.NewTranslationService()
	featureFlags := services.NewFeatureFlags(flagEvaluator, logger.Logger)
	templateResolver := services.NewSmsTemplateResolver(templateClient, cfg.Notify.TemplateIDs, logger.Logger)
	smsNotifier := services.NewSmsNotifier(templateResolver, smsSender, featureFlags, telemetry, translator, logger.Logger)
	calendarService := services.NewCalendarService(graphClient, mappingRepo, smsNotifier, telemetry, cfg.Calendar.FromEmail, location, logger.Logger)
	userService := services.NewUserService(graphClient, logger.Logger)
	smsPreviewService := services.NewSmsPreviewService(templateResolver, translator, logger.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	smsHandler := handlers.NewSmsHandler(smsPreviewService, logger.Logger)

	// Initialize auth middleware
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret)
	roleMiddleware := middleware.RoleMiddleware(tokenService, cfg.Auth.RequiredRole, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))

	// Public endpoints
	healthHandler.RegisterRoutes(r)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Endpoints for clients holding the required role
	r.Group(func(r chi.Router) {
		r.Use(roleMiddleware)
		calendarHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		smsHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "appointments_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try repository root if running from cmd/api
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
