package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cedrichouse/houseplans-api/internal/app/api"
	"github.com/cedrichouse/houseplans-api/internal/app/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := worker.Run(ctx, cfg); err != nil {
		log.Fatalf("checkout worker failed: %v", err)
	}
}
