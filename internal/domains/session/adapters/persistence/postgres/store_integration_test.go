//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
	"github.com/Apurer/go-water-storefront/internal/platform/migrations"
)

func setupSessionPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestStore_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewStore(db, "device-a", 0)
	other := NewStore(db, "device-b", 0)

	require.NoError(t, store.Set(ctx, ports.KeyToken, "tok-1"))
	require.NoError(t, store.Set(ctx, ports.KeyToken, "tok-2"))

	v, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-2", v)

	_, ok, err = other.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Delete(ctx, ports.KeyToken))
	_, ok, err = store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewStore(db, "device-a", time.Hour)
	require.NoError(t, store.Set(ctx, ports.KeyToken, "tok"))

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)
}
