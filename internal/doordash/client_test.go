package doordash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testDoorDashConfig()
	cfg.BaseURL = srv.URL

	authenticator, err := NewAuthenticator(cfg)
	require.NoError(t, err)

	return NewClient(cfg, authenticator, zap.NewNop())
}

func TestCreateDeliverySendsSignedRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/deliveries", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"external_delivery_id": "D-12345",
			"delivery_status":      "created",
			"tracking_url":         "https://track.example/D-12345",
			"currency":             "USD",
		})
	}))

	delivery, err := client.CreateDelivery(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "D-12345", delivery.ExternalDeliveryID)
	assert.Equal(t, domain.DeliveryStatusCreated, delivery.Status)
	assert.Equal(t, "https://track.example/D-12345", delivery.TrackingURL)

	// The bearer token must verify against the shared signing secret
	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	token, err := jwt.Parse(strings.TrimPrefix(gotAuth, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		return testSigningKey, nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "DD-JWT-V1", token.Header["dd-ver"])

	// Absent optionals are not on the wire at all
	assert.NotContains(t, gotBody, "pickup_instructions")
	assert.NotContains(t, gotBody, "order_value")
}

func TestCreateDeliveryValidationFailsBeforeNetwork(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	req := validCreateRequest()
	req.PickupPhoneNumber = ""

	_, err := client.CreateDelivery(context.Background(), req)
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "pickup_phone_number")
	assert.Equal(t, 0, requests, "invalid request must not reach the provider")
}

func TestCreateDeliveryProviderError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "duplicate_delivery_id",
			"message": "Delivery with this external_delivery_id already exists",
		})
	}))

	_, err := client.CreateDelivery(context.Background(), validCreateRequest())

	var provErr *errors.ErrProvider
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusConflict, provErr.StatusCode)
	assert.Equal(t, "Delivery with this external_delivery_id already exists", provErr.Message)
}

func TestGetDeliveryNormalizesTimestamps(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/deliveries/D-12345", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"delivery_id": "dd-internal-789",
			"external_delivery_id": "D-12345",
			"delivery_status": "enroute_to_pickup",
			"tracking_url": "https://track.example/D-12345",
			"currency": "USD",
			"fee": 799,
			"pickup_time_estimated": "2026-08-31T18:30:00Z",
			"pickup_time_actual": null,
			"dropoff_time_estimated": "2026-08-31T19:05:00Z",
			"dropoff_time_actual": null,
			"pickup_address": "901 Market Street, San Francisco, CA 94103",
			"dropoff_address": "1 Ferry Building, San Francisco, CA 94111"
		}`))
	}))

	delivery, err := client.GetDelivery(context.Background(), "D-12345")
	require.NoError(t, err)

	assert.Equal(t, "dd-internal-789", delivery.DeliveryID)
	assert.Equal(t, domain.DeliveryStatusEnrouteToPickup, delivery.Status)
	require.NotNil(t, delivery.Fee)
	assert.Equal(t, int64(799), *delivery.Fee)

	// Null provider timestamps become nil, never zero time
	require.NotNil(t, delivery.PickupTimeEstimated)
	assert.Equal(t, time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC), delivery.PickupTimeEstimated.UTC())
	assert.Nil(t, delivery.PickupTimeActual)
	assert.Nil(t, delivery.DropoffTimeActual)

	assert.Equal(t, "901 Market Street, San Francisco, CA 94103", delivery.PickupAddress)
}

func TestGetDeliveryPreservesUnknownStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"external_delivery_id": "D-12345",
			"delivery_status":      "returned_to_pickup",
		})
	}))

	delivery, err := client.GetDelivery(context.Background(), "D-12345")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatus("returned_to_pickup"), delivery.Status)
	assert.False(t, delivery.Status.Known())
}

func TestGetDeliveryNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
	}))

	_, err := client.GetDelivery(context.Background(), "D-404")

	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "delivery", nf.Resource)
	assert.Equal(t, "D-404", nf.ID)
}

func TestGetDeliveryEmptyIDRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := client.GetDelivery(context.Background(), "  ")
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
}

func TestGetDeliveryEscapesExternalID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"external_delivery_id": "D-12/45?x",
			"delivery_status":      "created",
		})
	}))

	_, err := client.GetDelivery(context.Background(), "D-12/45?x")
	require.NoError(t, err)

	// An ID with path metacharacters must stay one path segment
	assert.Equal(t, "/deliveries/D-12%2F45%3Fx", gotPath)
}

func TestCreateDeliveryNotFoundIsProviderError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such route"})
	}))

	_, err := client.CreateDelivery(context.Background(), validCreateRequest())

	// A 404 on creation means a misrouted request, not a missing delivery
	var provErr *errors.ErrProvider
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
	assert.Equal(t, "no such route", provErr.Message)
}

func TestGetDeliveryProviderErrorWithNonJSONBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.GetDelivery(context.Background(), "D-1")

	var provErr *errors.ErrProvider
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
	assert.Equal(t, "upstream exploded", provErr.Message)
}
