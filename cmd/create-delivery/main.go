package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/internal/doordash"
)

// Submits a test delivery to DoorDash Drive using credentials from the
// environment. Useful with the Delivery Simulator in the developer portal.
func main() {
	externalID := flag.String("external-id", "", "external delivery ID (generated when empty)")
	pickupAddress := flag.String("pickup-address", "901 Market Street 6th Floor San Francisco, CA 94103", "pickup address")
	pickupBusiness := flag.String("pickup-business", "daNomNoms Test Kitchen", "pickup business name")
	pickupPhone := flag.String("pickup-phone", "+16505555555", "pickup phone number")
	dropoffAddress := flag.String("dropoff-address", "901 Market Street 6th Floor San Francisco, CA 94103", "dropoff address")
	dropoffPhone := flag.String("dropoff-phone", "+16505555555", "dropoff phone number")
	orderValue := flag.Int64("order-value", 0, "order value in cents (omitted when 0)")
	flag.Parse()

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

	id := *externalID
	if id == "" {
		id = "D-" + uuid.NewString()
	}

	req := domain.DeliveryCreateRequest{
		ExternalDeliveryID: id,
		PickupAddress:      *pickupAddress,
		PickupBusinessName: *pickupBusiness,
		PickupPhoneNumber:  *pickupPhone,
		DropoffAddress:     *dropoffAddress,
		DropoffPhoneNumber: *dropoffPhone,
	}
	if *orderValue > 0 {
		req.OrderValue = orderValue
	}

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()

	delivery, err := client.CreateDelivery(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create delivery: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(delivery, "", "  ")
	fmt.Printf("Delivery created:\n%s\n", out)
}
