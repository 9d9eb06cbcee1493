package api

import (
	"time"

	"github.com/complaintdesk/classifier/internal/domain"
)

// SubmitComplaintRequest represents a complaint submission.
type SubmitComplaintRequest struct {
	Complaint string `json:"complaint"`
}

// ComplaintResponse represents a stored complaint record.
type ComplaintResponse struct {
	ID           int64     `json:"id"`
	Complaint    string    `json:"complaint"`
	Sentiment    string    `json:"sentiment"`
	Score        float64   `json:"score"`
	Department   string    `json:"department"`
	ReviewStatus string    `json:"review_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClassifyResponse represents a dry-run classification result. Nothing
// is stored and no ID is assigned.
type ClassifyResponse struct {
	Complaint  string  `json:"complaint"`
	Sentiment  string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Department string  `json:"department"`
}

// ComplaintsListResponse represents a filtered complaint listing.
type ComplaintsListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Total      int                 `json:"total"`
}

// UpdateStatusRequest represents a review status change.
type UpdateStatusRequest struct {
	ReviewStatus string `json:"review_status" binding:"required"`
}

// StatsResponse represents overall complaint statistics.
type StatsResponse struct {
	Total         int `json:"total"`
	Negative      int `json:"negative"`
	PendingReview int `json:"pending_review"`
}

// ModelServiceHealth represents the model sidecar health report.
type ModelServiceHealth struct {
	Reachable    bool      `json:"reachable"`
	LatencyMs    int64     `json:"latency_ms"`
	ModelVersion string    `json:"model_version,omitempty"`
	LastChecked  time.Time `json:"last_checked"`
	Error        string    `json:"error,omitempty"`
}

// toComplaintResponse converts a domain record to an API response.
func toComplaintResponse(rec *domain.ComplaintRecord) ComplaintResponse {
	return ComplaintResponse{
		ID:           rec.ID,
		Complaint:    rec.Text,
		Sentiment:    string(rec.Sentiment),
		Score:        rec.Score,
		Department:   string(rec.Department),
		ReviewStatus: string(rec.ReviewStatus),
		CreatedAt:    rec.CreatedAt,
	}
}
