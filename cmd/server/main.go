// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/platform/database"
	platformElasticsearch "iserviceseeker_backend/internal/platform/elasticsearch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	startupCtx := context.Background()

	if err := database.Migrate(server.DB, server.AppLogger); err != nil {
		server.AppLogger.Fatal("Database migration failed", zap.Error(err))
	}
	if err := database.Seed(startupCtx, server.DB, cfg, server.AppLogger); err != nil {
		server.AppLogger.Fatal("Database seeding failed", zap.Error(err))
	}

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateProvidersIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch providers index", zap.Error(err))
		} else if err := server.ProviderService.ReindexAllProfiles(startupCtx); err != nil {
			server.AppLogger.Error("Failed to reindex provider profiles", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not initialized, search falls back to the database.")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
