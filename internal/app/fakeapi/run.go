package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Apurer/go-water-storefront/internal/fakeapi"
	platformobservability "github.com/Apurer/go-water-storefront/internal/platform/observability"
)

const serviceName = "storefront-fakeapi"

// Run boots the in-memory storefront API and serves it until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	api, err := NewServer(cfg)
	if err != nil {
		return err
	}
	if cfg.SeedEmail != "" {
		logger.Info("seeded fake API account", slog.String("email", cfg.SeedEmail))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake storefront API listening", slog.String("addr", srv.Addr), slog.String("prefix", cfg.Prefix))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("fake storefront API exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown fake API: %w", err)
	}
	return nil
}

// NewServer builds the fake API from cfg, seeding the configured account.
func NewServer(cfg Config) (*fakeapi.Server, error) {
	api := fakeapi.New(
		fakeapi.WithPrefix(cfg.Prefix),
		fakeapi.WithSigningSecret(cfg.SigningSecret),
		fakeapi.WithTokenTTL(cfg.TokenTTL),
		fakeapi.WithResetTokens(cfg.ExposeResetToken),
		fakeapi.WithServiceName(serviceName),
	)
	if cfg.SeedEmail != "" {
		if _, err := api.AddUser(cfg.SeedName, cfg.SeedEmail, cfg.SeedPassword); err != nil {
			return nil, fmt.Errorf("seed account %s: %w", cfg.SeedEmail, err)
		}
	}
	return api, nil
}
