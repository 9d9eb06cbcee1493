package mltransport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/complaintdesk/classifier/internal/mltransport"
)

// testResponse is a simple response struct for test assertions.
type testResponse struct {
	Label string `json:"label"`
}

func TestDoPredict_ReturnsLatencyAndSize(t *testing.T) {
	want := testResponse{Label: "Mortgage"}
	respBody, marshalErr := json.Marshal(want)
	if marshalErr != nil {
		t.Fatalf("marshal test response: %v", marshalErr)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("expected /predict, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, writeErr := w.Write(respBody); writeErr != nil {
			t.Errorf("write response: %v", writeErr)
		}
	}))
	defer srv.Close()

	req := &mltransport.PredictRequest{Text: "my mortgage payment doubled"}
	var got testResponse

	latencyMs, responseSizeBytes, err := mltransport.DoPredict(
		context.Background(), srv.URL, req, &got,
	)
	if err != nil {
		t.Fatalf("DoPredict returned unexpected error: %v", err)
	}

	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0, got %d", latencyMs)
	}

	if responseSizeBytes != len(respBody) {
		t.Errorf("expected responseSizeBytes=%d, got %d", len(respBody), responseSizeBytes)
	}

	if got.Label != want.Label {
		t.Errorf("expected label=%q, got %q", want.Label, got.Label)
	}
}

func TestDoPredict_ErrorReturnsLatency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte("internal error")); writeErr != nil {
			t.Errorf("write response: %v", writeErr)
		}
	}))
	defer srv.Close()

	req := &mltransport.PredictRequest{Text: "anything"}
	var got testResponse

	latencyMs, _, err := mltransport.DoPredict(context.Background(), srv.URL, req, &got)
	if err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}

	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0 even on error, got %d", latencyMs)
	}
}

func TestDoHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model_version":"2024-11-03"}`))
	}))
	defer srv.Close()

	reachable, latencyMs, modelVersion, err := mltransport.DoHealth(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("DoHealth returned unexpected error: %v", err)
	}
	if !reachable {
		t.Error("expected reachable=true")
	}
	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0, got %d", latencyMs)
	}
	if modelVersion != "2024-11-03" {
		t.Errorf("expected model_version=2024-11-03, got %q", modelVersion)
	}
}
