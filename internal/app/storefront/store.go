package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Apurer/go-water-storefront/internal/domains/session/adapters/memory"
	filestore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/file"
	pgstore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/postgres"
	redisstore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/redis"
	sessionports "github.com/Apurer/go-water-storefront/internal/domains/session/ports"
	"github.com/Apurer/go-water-storefront/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-water-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-water-storefront/internal/platform/redis"
)

var errUnknownStore = errors.New("unknown session store")

// buildStore opens the configured key/value adapter. Unlike a server, a client has nowhere
// sensible to fall back to, so connection failures are returned.
func buildStore(ctx context.Context, cfg Config, logger *slog.Logger) (sessionports.Store, func(), error) {
	noop := func() {}
	switch cfg.Store {
	case StoreMemory:
		return memory.NewStore(), noop, nil
	case StoreFile, "":
		store, err := filestore.NewStore(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("session store configured with file", slog.String("path", store.Path()))
		return store, noop, nil
	case StoreRedis:
		client, err := platformredis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("session store configured with redis", slog.String("addr", cfg.Redis.Addr))
		return redisstore.NewStore(client, cfg.RedisKeyPrefix, cfg.SessionTTL), func() { _ = client.Close() }, nil
	case StorePostgres:
		db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, noop, err
		}
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("migrate session store: %w", err)
		}
		logger.Debug("session store configured with postgres", slog.String("namespace", cfg.StoreNamespace))
		return pgstore.NewStore(db, cfg.StoreNamespace, cfg.SessionTTL), cleanup, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}
}
