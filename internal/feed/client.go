package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"snapsentinel/internal/models"
)

var (
	// ErrNoEndpoint means the alerts API URL was never configured. It is
	// raised before any network I/O is attempted.
	ErrNoEndpoint = errors.New("alerts API URL is not configured")

	// ErrFetchFailed covers network failures and non-success HTTP statuses.
	ErrFetchFailed = errors.New("failed to fetch alerts from API")

	// ErrMalformedResponse covers bodies that are not valid JSON or lack the
	// items field.
	ErrMalformedResponse = errors.New("malformed alerts response")
)

// Client fetches raw alert records from the detection endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient builds a Client for the given endpoint. The HTTP client carries
// no timeout of its own; the round trip relies on transport defaults, and
// callers bound it through the request context if at all.
func NewClient(endpoint string, logger *logrus.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// FetchAlerts issues a single GET against the endpoint and decodes the
// {items: [...]} body. Records come back in wire order, unsorted.
func (c *Client) FetchAlerts(ctx context.Context) ([]models.RawAlertRecord, error) {
	if c.endpoint == "" {
		return nil, ErrNoEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected HTTP status %d", ErrFetchFailed, resp.StatusCode)
	}

	var payload struct {
		Items []models.RawAlertRecord `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: response lacks an items field", ErrMalformedResponse)
	}

	c.logger.Debugf("Fetched %d raw alerts from %s", len(payload.Items), c.endpoint)
	return payload.Items, nil
}
