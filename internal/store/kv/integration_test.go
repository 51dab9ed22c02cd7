package kv

import (
	"context"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/javajoker/loanpro-backend/internal/config"
)

func exerciseBackend(t *testing.T, b Backend) {
	ctx := context.Background()

	_, found, err := b.Get(ctx, "loanPayments")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Put(ctx, "loanPayments", []byte(`[{"emi_month":1}]`)))
	require.NoError(t, b.Put(ctx, "loanPayments", []byte(`[{"emi_month":2}]`)))

	got, found, err := b.Get(ctx, "loanPayments")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"emi_month":2}]`, string(got))
}

func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("loanpro_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	b, err := NewPostgresBackend(config.DatabaseConfig{
		URL:          connStr,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		MaxLifetime:  60,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	defer b.Close()

	exerciseBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	b, err := NewRedisBackend(ctx, config.RedisConfig{Host: host, Port: port.Port()}, "test:")
	require.NoError(t, err)
	defer b.Close()

	exerciseBackend(t, b)

	raw, err := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())}).Get(ctx, "test:loanPayments").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"emi_month":2}]`, raw)
}
