// internal/store/kv/backend.go
package kv

import (
	"context"
	"fmt"

	"github.com/javajoker/loanpro-backend/internal/config"
)

// Backend persists opaque values under string keys.
// Get reports found=false for a key that was never written.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// New builds the backend selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory, "":
		return NewMemoryBackend(), nil
	case config.StorageDriverPostgres:
		return NewPostgresBackend(cfg.Database)
	case config.StorageDriverRedis:
		return NewRedisBackend(ctx, cfg.Redis, cfg.Storage.KeyPrefix)
	case config.StorageDriverS3:
		return NewS3Backend(cfg.AWS, cfg.Storage.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
