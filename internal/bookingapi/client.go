// Package bookingapi is the HTTP client for the Cocoa Code booking backend.
package bookingapi

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

	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

const defaultTimeout = 10 * time.Second

// Config controls how the client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client talks to one backend base URL. Endpoint selection between
// candidates is the connectivity monitor's job, not the client's.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// New creates a configured Client with sane defaults.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL reports the endpoint this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks whether the endpoint is reachable and serving.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// Availability asks whether a new booking can be accepted for the month.
func (c *Client) Availability(ctx context.Context, month string) (bool, error) {
	data, err := c.do(ctx, http.MethodGet, "/bookings/availability/"+url.PathEscape(month), nil)
	if err != nil {
		return false, err
	}
	var out availabilityResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("bookingapi: unmarshal availability: %w", err)
	}
	return out.Available, nil
}

// CreateBooking posts a booking record.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingCreated, error) {
	data, err := c.do(ctx, http.MethodPost, "/bookings", req)
	if err != nil {
		return nil, err
	}
	var out BookingCreated
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("bookingapi: unmarshal booking response: %w", err)
	}
	if out.ProjectID == "" {
		return nil, fmt.Errorf("bookingapi: booking response missing project id")
	}
	return &out, nil
}

// CreatePaymentIntent opens a charge intent for an existing booking.
func (c *Client) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	data, err := c.do(ctx, http.MethodPost, "/payments/create-intent", req)
	if err != nil {
		return nil, err
	}
	var out PaymentIntentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("bookingapi: unmarshal intent response: %w", err)
	}
	return &out, nil
}

// ConfirmPayment confirms a previously opened intent.
func (c *Client) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	data, err := c.do(ctx, http.MethodPost, "/payments/confirm", req)
	if err != nil {
		return nil, err
	}
	var out ConfirmPaymentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("bookingapi: unmarshal confirm response: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("bookingapi: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("bookingapi: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("bookingapi: http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bookingapi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}
	return data, nil
}

func decodeAPIError(status int, data []byte) error {
	var out errorResponse
	if err := json.Unmarshal(data, &out); err == nil && out.Error != "" {
		return &APIError{StatusCode: status, Message: out.Error}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return &APIError{StatusCode: status, Message: msg}
}
