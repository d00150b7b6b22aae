package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/doordash"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: track-delivery <external_delivery_id>")
		os.Exit(1)
	}
	externalID := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	authenticator, err := doordash.NewAuthenticator(cfg.DoorDash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	client := doordash.NewClient(cfg.DoorDash, authenticator, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()

	delivery, err := client.GetDelivery(ctx, externalID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch delivery: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(delivery, "", "  ")
	fmt.Printf("%s\n", out)
}
