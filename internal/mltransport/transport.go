// Package mltransport provides shared HTTP transport for model sidecar
// predict and health calls.
package mltransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// PredictRequest is the request body for POST /predict. Text is expected
// to be normalized before it reaches the sidecar.
type PredictRequest struct {
	Text string `json:"text"`
}

// healthResponse is the JSON shape returned by GET /health (model_version optional).
type healthResponse struct {
	ModelVersion string `json:"model_version"`
}

// DoPredict sends POST /predict to baseURL with req, decoding the response
// into respPtr. respPtr must be a pointer to a struct matching the sidecar
// response (e.g. *PredictResponse). Returns call latency and response size
// for instrumentation.
func DoPredict(ctx context.Context, baseURL string, req *PredictRequest, respPtr any) (latencyMs int64, responseSizeBytes int, err error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, 0, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: defaultTimeout}
	start := time.Now()
	resp, err := client.Do(httpReq)
	latencyMs = time.Since(start).Milliseconds()
	if err != nil {
		return latencyMs, 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return latencyMs, 0, fmt.Errorf("model service returned %d", resp.StatusCode)
	}

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return latencyMs, 0, fmt.Errorf("read response: %w", readErr)
	}
	if decodeErr := json.Unmarshal(raw, respPtr); decodeErr != nil {
		return latencyMs, len(raw), fmt.Errorf("decode response: %w", decodeErr)
	}

	return latencyMs, len(raw), nil
}

// DoHealth calls GET /health at baseURL and returns reachable, latencyMs, model_version, and any error.
func DoHealth(ctx context.Context, baseURL string) (reachable bool, latencyMs int64, modelVersion string, err error) {
	start := time.Now()

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", http.NoBody)
	if reqErr != nil {
		return false, 0, "", fmt.Errorf("create request: %w", reqErr)
	}

	client := &http.Client{Timeout: defaultTimeout}
	resp, doErr := client.Do(httpReq)
	latencyMs = time.Since(start).Milliseconds()
	if doErr != nil {
		return false, latencyMs, "", fmt.Errorf("service unreachable: %w", doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, latencyMs, "", fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}

	reachable = true
	var healthResp healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&healthResp); decodeErr == nil {
		modelVersion = healthResp.ModelVersion
	}
	return reachable, latencyMs, modelVersion, nil
}
