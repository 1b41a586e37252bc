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

	"github.com/isdelr/classmate-be/internal/api"
	"github.com/isdelr/classmate-be/internal/auth"
	"github.com/isdelr/classmate-be/internal/chat"
	"github.com/isdelr/classmate-be/internal/config"
	"github.com/isdelr/classmate-be/internal/database"
	"github.com/isdelr/classmate-be/internal/logger"
	"github.com/isdelr/classmate-be/internal/monitoring"
	"github.com/isdelr/classmate-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	itemService := services.NewItemService(db)

	// Session tokens
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// Chat relay with primary/secondary upstream credentials
	relay := chat.NewRelay(
		chat.NewOpenAICompleter(cfg.ChatAPIKeyPrimary, cfg.ChatBaseURL),
		chat.NewOpenAICompleter(cfg.ChatAPIKeySecondary, cfg.ChatBaseURL),
		cfg.ChatModel,
	)

	// Set up and run the background health monitor
	monitor := monitoring.NewHealthMonitor(db)
	go monitor.Run()

	// Set up router
	router := api.NewRouter(tokens, userService, itemService, eventService, relay, monitor, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	monitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
