package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/complaintdesk/classifier/internal/database"
	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/intake"
	"github.com/complaintdesk/classifier/internal/logger"
)

const testJWTSecret = "test-secret"

type mockSubmitter struct {
	rec *domain.ComplaintRecord
	err error
}

func (m *mockSubmitter) Submit(_ context.Context, _ string) (*domain.ComplaintRecord, error) {
	return m.rec, m.err
}

type mockClassifier struct{}

func (mockClassifier) Classify(_ context.Context, text string) domain.ComplaintRecord {
	return domain.ComplaintRecord{
		Text:         text,
		Sentiment:    domain.SentimentNegative,
		Score:        -0.6,
		Department:   domain.DepartmentTheft,
		ReviewStatus: domain.StatusPendingReview,
		CreatedAt:    time.Now().Truncate(time.Second),
	}
}

type mockStore struct {
	rec          *domain.ComplaintRecord
	getErr       error
	listRecs     []*domain.ComplaintRecord
	listFilter   database.ListFilter
	updateFound  bool
	updateStatus domain.ReviewStatus
	deleteFound  bool
	stats        *database.ComplaintStats
	statsErr     error
}

func (m *mockStore) GetByID(_ context.Context, _ int64) (*domain.ComplaintRecord, error) {
	return m.rec, m.getErr
}

func (m *mockStore) List(_ context.Context, filter database.ListFilter) ([]*domain.ComplaintRecord, error) {
	m.listFilter = filter
	return m.listRecs, nil
}

func (m *mockStore) UpdateReviewStatus(_ context.Context, _ int64, status domain.ReviewStatus) (bool, error) {
	m.updateStatus = status
	return m.updateFound, nil
}

func (m *mockStore) Delete(_ context.Context, _ int64) (bool, error) {
	return m.deleteFound, nil
}

func (m *mockStore) GetStats(_ context.Context) (*database.ComplaintStats, error) {
	if m.stats == nil {
		return &database.ComplaintStats{}, m.statsErr
	}
	return m.stats, m.statsErr
}

func (m *mockStore) GetDepartmentStats(_ context.Context) ([]*database.DepartmentStat, error) {
	return nil, nil
}

func (m *mockStore) GetSentimentStats(_ context.Context) ([]*database.SentimentStat, error) {
	return nil, nil
}

func (m *mockStore) GetDailyCounts(_ context.Context, _ int) ([]*database.DailyCount, error) {
	return nil, nil
}

func newTestRouter(submitter Submitter, store ComplaintStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(submitter, mockClassifier{}, store, "", logger.NewNop(), nil)
	router := gin.New()
	SetupRoutes(router, handler, testJWTSecret, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signTestToken(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "reviewer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSubmitComplaintCreated(t *testing.T) {
	rec := &domain.ComplaintRecord{
		ID:           42,
		Text:         "fraud on my account",
		Sentiment:    domain.SentimentNegative,
		Score:        -0.7,
		Department:   domain.DepartmentTheft,
		ReviewStatus: domain.StatusPendingReview,
		CreatedAt:    time.Now().Truncate(time.Second),
	}
	router := newTestRouter(&mockSubmitter{rec: rec}, &mockStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/complaints",
		SubmitComplaintRequest{Complaint: "fraud on my account"}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp ComplaintResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 42 {
		t.Errorf("id = %d", resp.ID)
	}
	if resp.Department != string(domain.DepartmentTheft) {
		t.Errorf("department = %q", resp.Department)
	}
}

func TestSubmitComplaintEmpty(t *testing.T) {
	router := newTestRouter(&mockSubmitter{err: intake.ErrEmptyComplaint}, &mockStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/complaints",
		SubmitComplaintRequest{Complaint: "   "}, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitComplaintDuplicate(t *testing.T) {
	router := newTestRouter(&mockSubmitter{err: intake.ErrDuplicate}, &mockStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/complaints",
		SubmitComplaintRequest{Complaint: "same text"}, nil)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestSubmitComplaintPersistenceFailure(t *testing.T) {
	router := newTestRouter(&mockSubmitter{err: errors.New("connection reset")}, &mockStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/complaints",
		SubmitComplaintRequest{Complaint: "valid"}, nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestClassifyDryRun(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/classify",
		SubmitComplaintRequest{Complaint: "stolen card"}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp ClassifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Department != string(domain.DepartmentTheft) {
		t.Errorf("department = %q", resp.Department)
	}
	if resp.Sentiment != string(domain.SentimentNegative) {
		t.Errorf("sentiment = %q", resp.Sentiment)
	}
}

func TestGetComplaintNotFound(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{getErr: database.ErrNotFound})

	w := doJSON(t, router, http.MethodGet, "/api/v1/complaints/7", nil, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListComplaintsFilterValidation(t *testing.T) {
	store := &mockStore{}
	router := newTestRouter(&mockSubmitter{}, store)

	w := doJSON(t, router, http.MethodGet, "/api/v1/complaints?department=Unknown", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad department: status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet,
		"/api/v1/complaints?department=Others&sentiment=Negative&limit=10", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.listFilter.Department != domain.DepartmentOthers {
		t.Errorf("filter department = %q", store.listFilter.Department)
	}
	if store.listFilter.Limit != 10 {
		t.Errorf("filter limit = %d", store.listFilter.Limit)
	}
}

func TestUpdateReviewStatusRequiresAuth(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{updateFound: true})

	w := doJSON(t, router, http.MethodPut, "/api/v1/complaints/1/status",
		UpdateStatusRequest{ReviewStatus: "Resolved"}, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without token", w.Code)
	}
}

func TestUpdateReviewStatus(t *testing.T) {
	store := &mockStore{updateFound: true}
	router := newTestRouter(&mockSubmitter{}, store)
	headers := map[string]string{"Authorization": "Bearer " + signTestToken(t)}

	w := doJSON(t, router, http.MethodPut, "/api/v1/complaints/1/status",
		UpdateStatusRequest{ReviewStatus: "Reviewed - Action Taken"}, headers)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.updateStatus != domain.StatusActionTaken {
		t.Errorf("stored status = %q", store.updateStatus)
	}
}

func TestUpdateReviewStatusInvalid(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{updateFound: true})
	headers := map[string]string{"Authorization": "Bearer " + signTestToken(t)}

	w := doJSON(t, router, http.MethodPut, "/api/v1/complaints/1/status",
		UpdateStatusRequest{ReviewStatus: "Closed"}, headers)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown status", w.Code)
	}
}

func TestUpdateReviewStatusNotFound(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{updateFound: false})
	headers := map[string]string{"Authorization": "Bearer " + signTestToken(t)}

	w := doJSON(t, router, http.MethodPut, "/api/v1/complaints/99/status",
		UpdateStatusRequest{ReviewStatus: "Resolved"}, headers)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteComplaint(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{deleteFound: true})
	headers := map[string]string{"Authorization": "Bearer " + signTestToken(t)}

	w := doJSON(t, router, http.MethodDelete, "/api/v1/complaints/3", nil, headers)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	store := &mockStore{stats: &database.ComplaintStats{Total: 10, Negative: 6, PendingReview: 4}}
	router := newTestRouter(&mockSubmitter{}, store)

	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 10 || resp.Negative != 6 || resp.PendingReview != 4 {
		t.Errorf("unexpected stats %+v", resp)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&mockSubmitter{}, &mockStore{})

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
