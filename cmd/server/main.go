package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"binakata/internal/config"
	"binakata/internal/database"
	"binakata/internal/handlers"
	"binakata/internal/repository"
	"binakata/internal/scheduler"
	"binakata/internal/scoring"
	"binakata/internal/security"
	"binakata/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if cfg.JWTSecret == "change_me" {
		log.Println("Warning: JWT_SECRET is not set, using the development default")
	}

	startup := handlers.NewStartupStatus(handlers.StepDatabase, handlers.StepMigrations, handlers.StepServices, handlers.StepProbe)

	// Initialize database with config (supports sqlite, postgres, mysql)
	startup.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.CompleteStep(handlers.StepDatabase)

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	startup.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	startup.CompleteStep(handlers.StepMigrations)

	log.Println("Migrations completed successfully")

	// Initialize repositories
	startup.SetCurrentStep(handlers.StepServices)
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	remote := scoring.NewRemoteScorer(cfg.MLServiceURL, &http.Client{Timeout: cfg.ScorerTimeout})
	scorer := scoring.NewScorer(remote, scoring.Heuristic{}, cfg.ScorerTimeout, logger)

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, emailService, logger)
	childService := service.NewChildService(childRepo)
	progressService := service.NewProgressService(progressRepo, childRepo, cfg.Location, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, childRepo, userRepo, scorer, emailService, logger)
	dashboardService := service.NewDashboardService(assessmentRepo)
	startup.CompleteStep(handlers.StepServices)

	// Background scorer health probe
	startup.SetCurrentStep(handlers.StepProbe)
	probe := scheduler.NewScorerProbe(remote, cfg.ScorerProbeInterval, cfg.ScorerTimeout)
	if err := probe.Start(); err != nil {
		log.Fatalf("Failed to start scorer probe: %v", err)
	}
	defer probe.Stop()
	startup.CompleteStep(handlers.StepProbe)

	// 10 login or register attempts per minute per client
	limiter := security.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	// Initialize handlers
	router := &handlers.Router{
		Middleware:  handlers.NewMiddleware(authService, limiter),
		Auth:        handlers.NewAuthHandler(authService),
		Children:    handlers.NewChildHandler(childService, progressService),
		Assessments: handlers.NewAssessmentHandler(assessmentService),
		Progress:    handlers.NewProgressHandler(progressService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Health:      handlers.NewHealthHandler(startup, probe),
	}

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	startup.MarkReady()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Let in-flight risk alerts finish before the database closes
	assessmentService.Wait()
	log.Println("Server stopped")
}
