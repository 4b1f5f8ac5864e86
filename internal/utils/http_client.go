package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnhealthy is returned by CheckHealth when the probed endpoint does not
// answer with a successful envelope.
var ErrUnhealthy = errors.New("service is unhealthy")

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:5679", 3*time.Second)
//	err := client.CheckHealth(ctx, "/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient sending requests to baseURL. A zero
// timeout leaves resty's default (none) in place.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", JSONContentType)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

// CheckHealth issues GET path and expects 200 with a body of the form
// {"success":true,...}.
func (c *HTTPClient) CheckHealth(ctx context.Context, path string) error {
	resp, err := c.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("error probing %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s answered %d", ErrUnhealthy, path, resp.StatusCode())
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%w: %s returned a non-JSON body: %w", ErrUnhealthy, path, err)
	}
	if !envelope.Success {
		return fmt.Errorf("%w: %s reported failure", ErrUnhealthy, path)
	}
	return nil
}
