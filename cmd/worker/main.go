package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appstorefront "github.com/Apurer/go-water-storefront/internal/app/storefront"
	checkoutgateway "github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/gateway"
	platformobservability "github.com/Apurer/go-water-storefront/internal/platform/observability"
	checkoutactivities "github.com/Apurer/go-water-storefront/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-water-storefront/internal/platform/temporal/workflows/checkout"
)

func main() {
	ctx := context.Background()
	if err := appstorefront.LoadEnvFile(); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}
	const serviceName = "storefront-checkout-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithStdoutTraceFallback())
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := appstorefront.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = serviceName + "/1"
	}
	api, err := appstorefront.NewStorefrontClient(cfg, nil)
	if err != nil {
		logger.Error("failed to configure storefront client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	confirmer, err := appstorefront.NewPaymentConfirmer(cfg, nil)
	if err != nil {
		logger.Error("failed to configure payment confirmer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if confirmer == nil {
		logger.Warn("PAYMENT_PUBLISHABLE_KEY not set, card checkouts will fail")
	}
	checkoutActivities := checkoutactivities.NewActivities(checkoutgateway.New(api), confirmer)

	temporalClient, err := appstorefront.DialTemporal(cfg, logger, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.PlaceOrderWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.PlaceOrderWorkflowName})
	w.RegisterActivityWithOptions(checkoutActivities.CreateOrder, activity.RegisterOptions{Name: checkoutactivities.CreateOrderActivityName})
	w.RegisterActivityWithOptions(checkoutActivities.ConfirmPayment, activity.RegisterOptions{Name: checkoutactivities.ConfirmPaymentActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", checkoutworkflows.TaskQueue),
		slog.String("namespace", cfg.TemporalNamespace),
		slog.String("api", api.BaseURL()),
	)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
