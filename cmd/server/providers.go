// File: cmd/server/providers.go
package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/filestorage"
	"iserviceseeker_backend/internal/platform/database"
)

func provideFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.FileStorageService, error) {
	return filestorage.NewFileStorageService(cfg.FileStoragePath, logger)
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
