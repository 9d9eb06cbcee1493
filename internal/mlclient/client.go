// Package mlclient is the HTTP client for the product-category model
// sidecar. The sidecar serves the trained classifier the keyword tiers
// fall back to.
package mlclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/complaintdesk/classifier/internal/mltransport"
)

// ErrUnavailable indicates the model sidecar is unreachable.
var ErrUnavailable = errors.New("model service unavailable")

// Client is an HTTP client for the model sidecar.
type Client struct {
	baseURL string
}

// PredictResponse is the response body from /predict.
type PredictResponse struct {
	Label            string  `json:"label"`
	Confidence       float64 `json:"confidence"`
	ModelVersion     string  `json:"model_version"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

// NewClient creates a new model sidecar client.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// Predict asks the sidecar for a product-category label. text must
// already be normalized; the sidecar applies no cleaning of its own.
func (c *Client) Predict(ctx context.Context, text string) (string, error) {
	req := &mltransport.PredictRequest{Text: text}
	var result PredictResponse
	if _, _, err := mltransport.DoPredict(ctx, c.baseURL, req, &result); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result.Label, nil
}

// Health checks if the model sidecar is healthy.
func (c *Client) Health(ctx context.Context) error {
	reachable, _, _, err := mltransport.DoHealth(ctx, c.baseURL)
	if err != nil {
		if !reachable {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	return nil
}
