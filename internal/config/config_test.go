package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PAYMENT_SUCCESS_RATE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 0.9, cfg.Payment.SuccessRate)
	assert.Equal(t, 2000, cfg.Payment.SimulatedDelayMs)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RATE_LIMIT_ENABLED", "FALSE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Frontend.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadIgnoresEmptyOriginList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Frontend.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "development",
			JWT:         JWTConfig{SecretKey: defaultJWTSecret},
			Storage:     StorageConfig{Driver: StorageDriverMemory},
			Payment:     PaymentConfig{SuccessRate: 0.9},
			Admin:       AdminConfig{Username: "admin", Password: "admin123"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "default secret in production",
			mutate:  func(c *Config) { c.Environment = "production" },
			wantErr: "JWT secret",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mongo" },
			wantErr: "unknown storage driver",
		},
		{
			name:    "success rate above one",
			mutate:  func(c *Config) { c.Payment.SuccessRate = 1.5 },
			wantErr: "success rate",
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Payment.SimulatedDelayMs = -1 },
			wantErr: "delay",
		},
		{
			name:    "missing admin password",
			mutate:  func(c *Config) { c.Admin.Password = "" },
			wantErr: "admin credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "loans", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=loans sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db:5432/loans"
	assert.Equal(t, "postgres://u:p@db:5432/loans", d.DSN())
}
