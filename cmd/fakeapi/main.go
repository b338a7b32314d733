package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appfakeapi "github.com/Apurer/go-water-storefront/internal/app/fakeapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg, err := appfakeapi.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := appfakeapi.Run(ctx, cfg); err != nil {
		log.Fatalf("fake API exited: %v", err)
	}
}
