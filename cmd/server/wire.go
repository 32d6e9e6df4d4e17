// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"iserviceseeker_backend/internal/app"
	"iserviceseeker_backend/internal/category"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/firebase"
	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/jobs"
	"iserviceseeker_backend/internal/platform/database"
	"iserviceseeker_backend/internal/platform/elasticsearch"
	"iserviceseeker_backend/internal/platform/logger"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		elasticsearch.NewClient,
		provideFileStorage,
		provideCleanup,

		// Firebase Service
		firebase.NewFirebaseService,

		// Core User Services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Marketplace Modules
		category.NewGORMRepository,
		category.NewService,
		category.NewHandler,
		homeowner.NewGORMRepository,
		homeowner.NewService,
		homeowner.NewHandler,
		provider.NewGORMRepository,
		provider.NewService,
		provider.NewHandler,

		// Jobs
		jobs.NewVerificationReminderJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
