package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	appstorefront "github.com/Apurer/go-water-storefront/internal/app/storefront"
	pgstore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/postgres"
	"github.com/Apurer/go-water-storefront/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-water-storefront/internal/platform/postgres"
)

// session-purger deletes expired entries written by the postgres session store.
// Entries without a TTL never expire and are left alone.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := appstorefront.LoadEnvFile(); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; cannot purge sessions")
	}
	db, cleanup, err := platformpostgres.Open(ctx, dsn, logger)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer cleanup()
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate session store: %v", err)
	}

	store := pgstore.NewStore(db, "", 0)
	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
