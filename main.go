package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gatherly/gatherly-be/internal/api"
	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/config"
	"github.com/gatherly/gatherly-be/internal/database"
	"github.com/gatherly/gatherly-be/internal/logger"
	"github.com/gatherly/gatherly-be/internal/monitoring"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/gatherly/gatherly-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up token issuer/verifier
	tokens := auth.NewTokens(cfg.JWTSecret)

	// Set up WebSocket Hub for notification push
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	notificationService := services.NewNotificationService(db, hub)
	userService := services.NewUserService(db, notificationService)
	eventService := services.NewEventService(db, notificationService)
	rsvpService := services.NewRSVPService(db, notificationService)

	// Set up and run the background reminder worker
	reminder, err := monitoring.NewReminder(eventService, rsvpService, notificationService,
		"*/5 * * * *", time.Duration(cfg.ReminderWindowHours)*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize reminder worker")
	}
	go reminder.Run()

	// Set up router
	router := api.NewRouter(cfg, db, tokens, hub, api.Services{
		Users:         userService,
		Events:        eventService,
		RSVPs:         rsvpService,
		Notifications: notificationService,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("environment", cfg.Environment).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
