/**
 * @description
 * This is the main entry point for the card-webhook-service. Its primary role
 * is to start an HTTP server that listens for incoming card-lifecycle
 * webhooks from the bank, the card manufacturer and the logistics provider,
 * and relays them to the downstream cards service.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Builds the cards service client once with the configured base URL,
 *   shared secret and forwarding timeout.
 * - Sets up an HTTP router (`chi`) to direct webhook traffic to the
 *   appropriate handler.
 * - Implements graceful shutdown to ensure clean resource cleanup on
 *   termination.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files during local development.
 * - The service's internal packages for config, API handling, and the cards client.
 */
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/transfa/card-webhook-service/internal/api"
	"github.com/transfa/card-webhook-service/internal/config"
	"github.com/transfa/card-webhook-service/pkg/cardsclient"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load application configuration.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Build the cards service client once; it is shared by all handlers.
	cards := cardsclient.NewClient(
		cfg.CardsBaseURL,
		cfg.CardsAPIKey,
		time.Duration(cfg.ForwardTimeoutSeconds)*time.Second,
	)

	// Set up router and handlers.
	handler := api.NewWebhookHandler(cards)
	router := api.NewRouter(handler)

	// Start the HTTP server.
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s, forwarding to %s", cfg.ServerPort, cfg.CardsBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	// Graceful shutdown logic.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
