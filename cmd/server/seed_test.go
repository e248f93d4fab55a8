package main

import (
	"context"
	"fmt"
	"testing"

	"conectar_backend/internal/common"
	"conectar_backend/internal/config"
	"conectar_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeedAdmin_RequiresCredentials(t *testing.T) {
	cfg := &config.Config{SeedAdminName: "Administrador"}
	assert.ErrorContains(t, runSeedAdmin(cfg, "", "", ""), "required")
	assert.ErrorContains(t, runSeedAdmin(cfg, "", "admin@x.com", "123"), "at least 6")
}

func TestAdminSeeder_Idempotent(t *testing.T) {
	cfg := &config.Config{
		GinMode:     "test",
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel:    "error",
		LogFormat:   "json",
	}
	seeder, cleanup, err := initializeAdminSeeder(cfg)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, seeder.Seed(ctx, "Admin", "Admin@Conectar.com", "admin123"))
	require.NoError(t, seeder.Seed(ctx, "Admin", "admin@conectar.com", "other123"))

	admins, err := seeder.users.FindAll(ctx, user.ListUsersQuery{Role: common.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@conectar.com", admins[0].Email)
	assert.True(t, common.CheckPasswordHash("admin123", *admins[0].Password))
}
