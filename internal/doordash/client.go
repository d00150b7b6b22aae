package doordash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// Client calls the DoorDash Drive v2 API. Each request is signed with a
// freshly minted token from the Authenticator; nothing is cached between
// calls and no request is retried here. Retry policy, if any, belongs to
// the caller and is only safe for status reads, never creation.
type Client struct {
	baseURL       string
	authenticator *Authenticator
	httpClient    *http.Client
	logger        *zap.Logger
	now           func() time.Time
}

// NewClient creates a DoorDash Drive client
func NewClient(cfg config.DoorDashConfig, authenticator *Authenticator, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		authenticator: authenticator,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}
}

// CreateDelivery submits a delivery-creation request. The external delivery
// ID must be unique per provider account; a duplicate is rejected by the
// provider and surfaced as an ErrProvider, it is never retried or treated
// as a no-op here.
func (c *Client) CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error) {
	payload, err := BuildCreateRequest(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery request: %w", err)
	}

	rec, err := c.do(ctx, http.MethodPost, c.baseURL+"/deliveries", bytes.NewReader(body), req.ExternalDeliveryID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Delivery created",
		zap.String("external_delivery_id", rec.ExternalDeliveryID),
		zap.String("delivery_status", rec.DeliveryStatus),
	)
	return normalize(rec), nil
}

// GetDelivery fetches the current delivery record for an external delivery ID.
func (c *Client) GetDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error) {
	if strings.TrimSpace(externalDeliveryID) == "" {
		return nil, &errors.ErrValidation{
			Message: "external_delivery_id is required",
			Fields:  map[string]string{"external_delivery_id": "is required"},
		}
	}

	rec, err := c.do(ctx, http.MethodGet, c.baseURL+"/deliveries/"+url.PathEscape(externalDeliveryID), nil, externalDeliveryID)
	if err != nil {
		return nil, err
	}
	return normalize(rec), nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, externalDeliveryID string) (*deliveryRecord, error) {
	token, err := c.authenticator.Token(c.now())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach delivery provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var rec deliveryRecord
		if err := json.Unmarshal(respBody, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal provider response: %w", err)
		}
		return &rec, nil
	case resp.StatusCode == http.StatusNotFound && method == http.MethodGet:
		// Only a status read can mean "no such delivery"; a 404 on creation
		// is a provider-side routing problem and falls through below.
		return nil, &errors.ErrNotFound{Resource: "delivery", ID: externalDeliveryID}
	default:
		c.logger.Warn("Delivery provider returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("external_delivery_id", externalDeliveryID),
		)
		return nil, &errors.ErrProvider{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(respBody),
		}
	}
}

// providerMessage extracts the error message from a provider error body,
// falling back to the raw body when it is not the documented JSON shape.
func providerMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}
