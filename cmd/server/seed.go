package main

import (
	"context"

	"conectar_backend/internal/company"
	"conectar_backend/internal/platform/database"
	"conectar_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type adminSeeder struct {
	db     *gorm.DB
	users  user.Service
	logger *zap.Logger
}

func newAdminSeeder(db *gorm.DB, users user.Service, logger *zap.Logger) *adminSeeder {
	return &adminSeeder{db: db, users: users, logger: logger.Named("seed-admin")}
}

// Seed migrates the schema and makes sure the admin account exists.
func (s *adminSeeder) Seed(ctx context.Context, name, email, password string) error {
	if err := database.AutoMigrate(s.db, s.logger, &user.User{}, &company.Company{}); err != nil {
		return err
	}
	usr, created, err := s.users.EnsureAdmin(ctx, name, email, password)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Admin account created", zap.String("userID", usr.ID.String()), zap.String("email", usr.Email))
	} else {
		s.logger.Info("Account already exists, nothing to do", zap.String("userID", usr.ID.String()), zap.String("role", usr.Role))
	}
	return nil
}
