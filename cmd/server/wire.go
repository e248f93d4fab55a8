// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"conectar_backend/internal/app"
	"conectar_backend/internal/auth"
	"conectar_backend/internal/company"
	"conectar_backend/internal/config"
	"conectar_backend/internal/firebase"
	"conectar_backend/internal/jobs"
	"conectar_backend/internal/platform/database"
	"conectar_backend/internal/platform/logger"
	"conectar_backend/internal/user"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	logger.New,
	database.NewGORM,
)

var userSet = wire.NewSet(
	user.NewGORMRepository,
	provideUserService,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,

		firebase.NewFirebaseService,
		provideIDTokenVerifier,
		auth.NewJWTService,

		userSet,
		auth.NewService,
		auth.NewHandler,
		user.NewHandler,

		company.NewGORMRepository,
		company.NewService,
		company.NewHandler,

		jobs.NewInactiveUsersReportJob,

		app.NewServer,
	)
	return nil, nil, nil
}

// initializeAdminSeeder wires what the seed-admin command needs.
func initializeAdminSeeder(cfg *config.Config) (*adminSeeder, func(), error) {
	wire.Build(
		platformSet,
		userSet,
		newAdminSeeder,
	)
	return nil, nil, nil
}
