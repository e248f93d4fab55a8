package database

import (
	"fmt"
	"testing"

	"conectar_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func memoryConfig() *config.Config {
	return &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel:    "error",
	}
}

func TestNewGORM_SQLiteMemory(t *testing.T) {
	logger := zap.NewNop()
	db, cleanup, err := NewGORM(memoryConfig(), logger)
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, AutoMigrate(db, logger, &widget{}))
	require.NoError(t, db.Create(&widget{Code: "a"}).Error)

	err = db.Create(&widget{Code: "a"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewGORM_UnsupportedDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.DBDriver = "oracle"
	_, _, err := NewGORM(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}
