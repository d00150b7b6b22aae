package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

type fakeDeliveryRequester struct {
	delivery *domain.Delivery
	err      error
	gotReq   domain.DeliveryCreateRequest
}

func (f *fakeDeliveryRequester) CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.delivery, nil
}

func (f *fakeDeliveryRequester) TrackDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.delivery, nil
}

func newDeliveryRouter(deliveries DeliveryRequester) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/doordash/deliveries", HandleCreateDelivery(deliveries, zap.NewNop()))
	r.GET("/api/doordash/deliveries/:external_delivery_id", HandleTrackDelivery(deliveries, zap.NewNop()))
	return r
}

const validDeliveryBody = `{
	"external_delivery_id": "D-12345",
	"pickup_address": "901 Market Street, San Francisco, CA 94103",
	"pickup_business_name": "Golden Wok",
	"pickup_phone_number": "+14155550100",
	"dropoff_address": "1 Ferry Building, San Francisco, CA 94111",
	"dropoff_phone_number": "+14155550199",
	"order_value": 2598
}`

func TestHandleCreateDelivery(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		delivery: &domain.Delivery{
			ExternalDeliveryID: "D-12345",
			Status:             domain.DeliveryStatusCreated,
			TrackingURL:        "https://track.example/D-12345",
		},
	}

	w := postJSON(t, newDeliveryRouter(deliveries), "/api/doordash/deliveries", validDeliveryBody)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "D-12345", got["external_delivery_id"])
	assert.Equal(t, "created", got["delivery_status"])

	// order_value passes through in minor units, no conversion
	require.NotNil(t, deliveries.gotReq.OrderValue)
	assert.Equal(t, int64(2598), *deliveries.gotReq.OrderValue)
	assert.Nil(t, deliveries.gotReq.PickupInstructions)
}

func TestHandleCreateDeliveryMissingRequiredField(t *testing.T) {
	w := postJSON(t, newDeliveryRouter(&fakeDeliveryRequester{}), "/api/doordash/deliveries",
		`{"external_delivery_id": "D-12345"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PickupAddress")
}

func TestHandleCreateDeliveryValidationNamesFields(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		err: &errors.ErrValidation{
			Message: "pickup_phone_number is required",
			Fields:  map[string]string{"pickup_phone_number": "is required"},
		},
	}

	w := postJSON(t, newDeliveryRouter(deliveries), "/api/doordash/deliveries", validDeliveryBody)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var got struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got.Fields, "pickup_phone_number")
}

func TestHandleCreateDeliveryProviderStatusPassthrough(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		err: &errors.ErrProvider{
			StatusCode: http.StatusConflict,
			Message:    "Delivery with this external_delivery_id already exists",
		},
	}

	w := postJSON(t, newDeliveryRouter(deliveries), "/api/doordash/deliveries", validDeliveryBody)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestHandleCreateDeliveryAuthMisconfigured(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		err: &errors.ErrAuthConfiguration{Reason: "DOORDASH_SIGNING_SECRET is not set"},
	}

	w := postJSON(t, newDeliveryRouter(deliveries), "/api/doordash/deliveries", validDeliveryBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleTrackDelivery(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		delivery: &domain.Delivery{
			ExternalDeliveryID: "D-12345",
			Status:             domain.DeliveryStatus("returned_to_pickup"),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/doordash/deliveries/D-12345", nil)
	w := httptest.NewRecorder()
	newDeliveryRouter(deliveries).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	// unknown provider statuses are reported verbatim
	assert.Equal(t, "returned_to_pickup", got["delivery_status"])
}

func TestHandleTrackDeliveryNotFound(t *testing.T) {
	deliveries := &fakeDeliveryRequester{
		err: &errors.ErrNotFound{Resource: "delivery", ID: "D-404"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/doordash/deliveries/D-404", nil)
	w := httptest.NewRecorder()
	newDeliveryRouter(deliveries).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
