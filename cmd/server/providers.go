package main

import (
	"conectar_backend/internal/auth"
	"conectar_backend/internal/config"
	"conectar_backend/internal/firebase"
	"conectar_backend/internal/user"

	"go.uber.org/zap"
)

// provideIDTokenVerifier keeps a nil *FirebaseService from becoming a non-nil interface.
func provideIDTokenVerifier(fs *firebase.FirebaseService) auth.IDTokenVerifier {
	if fs == nil {
		return nil
	}
	return fs
}

func provideUserService(repo user.Repository, logger *zap.Logger, cfg *config.Config) user.Service {
	return user.NewService(repo, logger, cfg.InactiveUserDays)
}
