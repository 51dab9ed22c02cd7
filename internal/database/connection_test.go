package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/javajoker/loanpro-backend/internal/config"
)

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Silent, gormLogLevel(""))
	assert.Equal(t, logger.Error, gormLogLevel("error"))
	assert.Equal(t, logger.Warn, gormLogLevel("warn"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
}

func TestInitializeUnreachableDatabase(t *testing.T) {
	db, err := Initialize(config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		User:     "loanpro",
		Password: "loanpro",
		Database: "loanpro",
		SSLMode:  "disable",
		LogLevel: "silent",
	})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping database")
}
