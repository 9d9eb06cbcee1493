package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/classifier/internal/database"
	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/intake"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/mlhealth"
	"github.com/complaintdesk/classifier/internal/telemetry"
)

const (
	maxListLimit    = 500
	defaultDays     = 30
	maxDays         = 365
	mlHealthTimeout = 5 * time.Second
)

// Submitter runs the full submission path.
type Submitter interface {
	Submit(ctx context.Context, text string) (*domain.ComplaintRecord, error)
}

// Classifier produces a record without storing it (dry-run).
type Classifier interface {
	Classify(ctx context.Context, text string) domain.ComplaintRecord
}

// ComplaintStore is the persistence surface the read and review
// endpoints need. *database.ComplaintsRepository satisfies it.
type ComplaintStore interface {
	GetByID(ctx context.Context, id int64) (*domain.ComplaintRecord, error)
	List(ctx context.Context, filter database.ListFilter) ([]*domain.ComplaintRecord, error)
	UpdateReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetStats(ctx context.Context) (*database.ComplaintStats, error)
	GetDepartmentStats(ctx context.Context) ([]*database.DepartmentStat, error)
	GetSentimentStats(ctx context.Context) ([]*database.SentimentStat, error)
	GetDailyCounts(ctx context.Context, days int) ([]*database.DailyCount, error)
}

// Handler handles HTTP requests for the complaints API.
type Handler struct {
	submitter  Submitter
	classifier Classifier
	store      ComplaintStore
	modelURL   string
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// NewHandler creates a new API handler. modelURL may be empty when the
// sidecar is disabled; tp may be nil.
func NewHandler(
	submitter Submitter,
	classifierInstance Classifier,
	store ComplaintStore,
	modelURL string,
	log logger.Logger,
	tp *telemetry.Provider,
) *Handler {
	return &Handler{
		submitter:  submitter,
		classifier: classifierInstance,
		store:      store,
		modelURL:   modelURL,
		logger:     log,
		telemetry:  tp,
	}
}

// SubmitComplaint handles POST /api/v1/complaints
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var req SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid submission request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.submitter.Submit(c.Request.Context(), req.Complaint)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrEmptyComplaint):
			c.JSON(http.StatusBadRequest, gin.H{"error": "complaint text is empty"})
		case errors.Is(err, intake.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate complaint within the suppression window"})
		default:
			h.logger.Error("Submission failed", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store complaint"})
		}
		return
	}

	h.logger.Info("Complaint submitted",
		logger.Int64("id", rec.ID),
		logger.String("department", string(rec.Department)),
	)

	c.JSON(http.StatusCreated, toComplaintResponse(rec))
}

// Classify handles POST /api/v1/classify
// Dry-run classification: nothing is stored and duplicates are not checked.
func (h *Handler) Classify(c *gin.Context) {
	var req SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := h.classifier.Classify(c.Request.Context(), req.Complaint)

	c.JSON(http.StatusOK, ClassifyResponse{
		Complaint:  rec.Text,
		Sentiment:  string(rec.Sentiment),
		Score:      rec.Score,
		Department: string(rec.Department),
	})
}

// ListComplaints handles GET /api/v1/complaints
func (h *Handler) ListComplaints(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list complaints", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load complaints"})
		return
	}

	response := make([]ComplaintResponse, len(recs))
	for i, rec := range recs {
		response[i] = toComplaintResponse(rec)
	}

	c.JSON(http.StatusOK, ComplaintsListResponse{
		Complaints: response,
		Total:      len(response),
	})
}

// GetComplaint handles GET /api/v1/complaints/:id
func (h *Handler) GetComplaint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
			return
		}
		h.logger.Error("Failed to get complaint", logger.Int64("id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get complaint"})
		return
	}

	c.JSON(http.StatusOK, toComplaintResponse(rec))
}

// UpdateReviewStatus handles PUT /api/v1/complaints/:id/status
func (h *Handler) UpdateReviewStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid status update request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := domain.ParseReviewStatus(req.ReviewStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, err := h.store.UpdateReviewStatus(c.Request.Context(), id, status)
	if err != nil {
		h.logger.Error("Failed to update review status", logger.Int64("id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review status"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	h.logger.Info("Review status updated",
		logger.Int64("id", id),
		logger.String("status", string(status)),
	)
	if h.telemetry != nil {
		h.telemetry.RecordReviewTransition(string(status))
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "review_status": string(status)})
}

// DeleteComplaint handles DELETE /api/v1/complaints/:id
func (h *Handler) DeleteComplaint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete complaint", logger.Int64("id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete complaint"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	h.logger.Info("Complaint deleted", logger.Int64("id", id))
	if h.telemetry != nil {
		h.telemetry.RecordDelete()
	}

	c.JSON(http.StatusOK, gin.H{"message": "complaint deleted"})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get stats", logger.Error(err))
		// Return empty stats instead of error to avoid breaking dashboards
		c.JSON(http.StatusOK, StatsResponse{})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Total:         stats.Total,
		Negative:      stats.Negative,
		PendingReview: stats.PendingReview,
	})
}

// GetDepartmentStats handles GET /api/v1/stats/departments
func (h *Handler) GetDepartmentStats(c *gin.Context) {
	stats, err := h.store.GetDepartmentStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get department stats", logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"departments": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": stats})
}

// GetSentimentStats handles GET /api/v1/stats/sentiment
func (h *Handler) GetSentimentStats(c *gin.Context) {
	stats, err := h.store.GetSentimentStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get sentiment stats", logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"sentiments": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentiments": stats})
}

// GetDailyStats handles GET /api/v1/stats/daily
func (h *Handler) GetDailyStats(c *gin.Context) {
	days := defaultDays
	if daysParam := c.Query("days"); daysParam != "" {
		d, err := strconv.Atoi(daysParam)
		if err != nil || d <= 0 || d > maxDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = d
	}

	counts, err := h.store.GetDailyCounts(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("Failed to get daily counts", logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"days": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": counts})
}

// GetModelHealth handles GET /api/v1/metrics/ml-health
func (h *Handler) GetModelHealth(c *gin.Context) {
	health := ModelServiceHealth{LastChecked: time.Now().UTC()}

	if h.modelURL == "" {
		health.Error = "model sidecar not configured"
		c.JSON(http.StatusOK, health)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), mlHealthTimeout)
	defer cancel()

	reachable, latencyMs, modelVersion, err := mlhealth.Check(ctx, h.modelURL)
	health.Reachable = reachable
	health.LatencyMs = latencyMs
	health.ModelVersion = modelVersion
	if err != nil {
		health.Error = err.Error()
	}

	c.JSON(http.StatusOK, health)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "complaint-classifier",
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	// Storage reachability is the only hard dependency; the model
	// sidecar is optional and the service degrades without it.
	if _, err := h.store.GetStats(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"postgresql": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"postgresql": "ok"},
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint ID"})
		return 0, false
	}
	return id, true
}

func parseListFilter(c *gin.Context) (database.ListFilter, error) {
	filter := database.ListFilter{
		Keyword: c.Query("keyword"),
	}

	if dept := c.Query("department"); dept != "" {
		d := domain.Department(dept)
		if !d.Valid() {
			return filter, errors.New("unknown department")
		}
		filter.Department = d
	}
	if sent := c.Query("sentiment"); sent != "" {
		s := domain.Sentiment(sent)
		if !s.Valid() {
			return filter, errors.New("unknown sentiment")
		}
		filter.Sentiment = s
	}
	if status := c.Query("status"); status != "" {
		st, err := domain.ParseReviewStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = st
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, errors.New("from must be RFC 3339")
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, errors.New("to must be RFC 3339")
		}
		filter.To = t
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 || limit > maxListLimit {
			return filter, errors.New("limit must be between 1 and 500")
		}
		filter.Limit = limit
	}
	if offsetParam := c.Query("offset"); offsetParam != "" {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil || offset < 0 {
			return filter, errors.New("offset must be non-negative")
		}
		filter.Offset = offset
	}

	return filter, nil
}
