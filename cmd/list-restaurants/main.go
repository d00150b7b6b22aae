package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/repository/postgres"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	catalog := postgres.NewCatalogRepository(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	restaurants, err := catalog.ListRestaurants(ctx, 1000, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list restaurants: %v\n", err)
		os.Exit(1)
	}
	total, err := catalog.CountRestaurants(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count restaurants: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d restaurants:\n\n", total)
	for _, r := range restaurants {
		eta := "-"
		if r.ETAMinutes != nil {
			eta = fmt.Sprintf("%d min", *r.ETAMinutes)
		}
		fmt.Printf("%-26s  fee %-8s  eta %-8s  %s\n", r.ID, r.DeliveryFee.StringFixed(2), eta, r.Name)
	}
}
