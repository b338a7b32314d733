package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	appstorefront "github.com/Apurer/go-water-storefront/internal/app/storefront"
	platformobservability "github.com/Apurer/go-water-storefront/internal/platform/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := appstorefront.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	const serviceName = "storefront-cli"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogOutput(os.Stderr),
		platformobservability.WithDefaultLevel(slog.LevelWarn),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to initialize observability:", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	c := &cli{
		loadApp: func(ctx context.Context) (*appstorefront.App, error) {
			cfg, err := appstorefront.LoadConfig()
			if err != nil {
				return nil, err
			}
			return appstorefront.New(ctx, cfg, appstorefront.WithInstruments(instruments))
		},
	}
	defer c.close()
	if err := newRootCmd(c).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
