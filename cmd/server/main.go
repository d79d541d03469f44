package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"footballiq/internal/clock"
	"footballiq/internal/config"
	"footballiq/internal/database"
	"footballiq/internal/events"
	"footballiq/internal/handlers"
	"footballiq/internal/jobs"
	"footballiq/internal/repository"
	"footballiq/internal/security"
	"footballiq/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("service", "footballiq").Logger()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("Database connection established")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	log.Info().Msg("Migrations completed successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	freezeRepo := repository.NewFreezeRepository(db)
	adUnlockRepo := repository.NewAdUnlockRepository(db)

	// Services
	clk := clock.System()
	bus := events.NewBus()
	bus.SubscribeFreezeBridged(func(e events.FreezeBridged) {
		log.Info().Str("user_id", e.UserID).Str("date", e.Date).Str("source", e.Source).
			Int("pre_bridge_streak", e.PreBridgeStreak).Msg("Freeze bridged")
	})
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenDuration, clk)
	streakService := service.NewStreakService(attemptRepo, freezeRepo, puzzleRepo, bus, clk, cfg.StreakMilestones, cfg.MaxFreezeStack, log.Logger)
	dailyService := service.NewDailyService(puzzleRepo, attemptRepo, adUnlockRepo, bus, clk, log.Logger)
	attemptService := service.NewAttemptService(attemptRepo, puzzleRepo, bus)
	adUnlockService := service.NewAdUnlockService(adUnlockRepo, puzzleRepo, clk, cfg.AdUnlockTTL)

	// Handlers
	limiter := security.NewRateLimiter(30, time.Minute)
	mw := handlers.NewMiddleware(authService, cfg.AdminAPIKey, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	dailyHandler := handlers.NewDailyHandler(dailyService)
	streakHandler := handlers.NewStreakHandler(streakService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	adUnlockHandler := handlers.NewAdUnlockHandler(adUnlockService)
	catalogHandler := handlers.NewCatalogHandler(puzzleRepo)

	// Routes
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit)
		r.Post("/auth/device", authHandler.RegisterDevice)
		r.Post("/auth/refresh", authHandler.Refresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Get("/daily/cards", dailyHandler.Cards)
		r.Get("/stats/streak", streakHandler.Stats)
		r.Post("/attempts", attemptHandler.Submit)
		r.Post("/ad-unlocks", adUnlockHandler.Unlock)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdminKey)
		r.Post("/internal/catalog", catalogHandler.Ingest)
	})

	// Background jobs
	scheduler := jobs.NewScheduler(adUnlockRepo, clk, cfg.RolloverTimezone, log.Logger)
	scheduler.Start()
	defer scheduler.Stop()

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
