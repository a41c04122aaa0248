package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/gdg-garage/fester-api/internal/config"
	"github.com/gdg-garage/fester-api/internal/database"
	"github.com/gdg-garage/fester-api/internal/handlers"
	"github.com/gdg-garage/fester-api/internal/logging"
	"github.com/gdg-garage/fester-api/internal/notifier"
	"github.com/gdg-garage/fester-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	rowStore := store.NewGormStore(db)

	var eventNotifier notifier.Notifier = notifier.Nop{}
	if cfg.DiscordBotToken != "" {
		discordNotifier, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID)
		if err != nil {
			logger.Warnf("Discord notifier not initialized: %v", err)
		} else {
			eventNotifier = discordNotifier
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, rowStore, logger)
	eventHandler := handlers.NewEventHandler(rowStore, eventNotifier, authHandler, logger)
	guestHandler := handlers.NewGuestHandler(rowStore, eventNotifier, authHandler, logger)

	// Initialize Router
	r := chi.NewRouter()
	if cfg.EnableCORS {
		r.Use(handlers.CORS(cfg.CORSOrigins))
	}
	handlers.RegisterRoutes(r, authHandler, eventHandler, guestHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
