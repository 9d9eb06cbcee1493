package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/complaintdesk/classifier/internal/domain"
)

// ErrNotFound indicates no complaint exists with the given ID.
var ErrNotFound = errors.New("complaint not found")

const defaultListLimit = 100

// ComplaintsRepository handles database operations for complaint records.
type ComplaintsRepository struct {
	db *sqlx.DB
}

// NewComplaintsRepository creates a new complaints repository.
func NewComplaintsRepository(db *sqlx.DB) *ComplaintsRepository {
	return &ComplaintsRepository{db: db}
}

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Keyword    string
	Department domain.Department
	Sentiment  domain.Sentiment
	Status     domain.ReviewStatus
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// ComplaintStats represents overall complaint statistics.
type ComplaintStats struct {
	Total         int `json:"total" db:"total"`
	Negative      int `json:"negative" db:"negative"`
	PendingReview int `json:"pending_review" db:"pending_review"`
}

// DepartmentStat represents complaint volume for a single department.
type DepartmentStat struct {
	Department string `json:"department" db:"department"`
	Count      int    `json:"count" db:"count"`
}

// SentimentStat represents complaint volume for a single sentiment label.
type SentimentStat struct {
	Sentiment string `json:"sentiment" db:"sentiment"`
	Count     int    `json:"count" db:"count"`
}

// DailyCount represents complaint volume for a single day.
type DailyCount struct {
	Day   string `json:"day" db:"day"`
	Count int    `json:"count" db:"count"`
}

// Create inserts a new complaint record and fills in its assigned ID.
func (r *ComplaintsRepository) Create(ctx context.Context, rec *domain.ComplaintRecord) error {
	query := `
		INSERT INTO complaints (complaint, sentiment, score, department, review_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rec.Text,
		rec.Sentiment,
		rec.Score,
		rec.Department,
		rec.ReviewStatus,
		rec.CreatedAt,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	return nil
}

// ExistsTextSince reports whether a complaint with exactly the given text
// was stored at or after since. Used by the duplicate guard; text is
// compared byte-for-byte against the stored column.
func (r *ComplaintsRepository) ExistsTextSince(ctx context.Context, text string, since time.Time) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM complaints
		WHERE complaint = $1 AND created_at >= $2
	`

	if err := r.db.QueryRowContext(ctx, query, text, since).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return count > 0, nil
}

// GetByID retrieves a single complaint record.
func (r *ComplaintsRepository) GetByID(ctx context.Context, id int64) (*domain.ComplaintRecord, error) {
	var rec domain.ComplaintRecord
	query := `
		SELECT id, complaint, sentiment, score, department, review_status, created_at
		FROM complaints
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	return &rec, nil
}

// List retrieves complaint records matching the filter, newest first.
func (r *ComplaintsRepository) List(ctx context.Context, filter ListFilter) ([]*domain.ComplaintRecord, error) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Keyword != "" {
		add("LOWER(complaint) LIKE $%d", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.Department != "" {
		add("department = $%d", filter.Department)
	}
	if filter.Sentiment != "" {
		add("sentiment = $%d", filter.Sentiment)
	}
	if filter.Status != "" {
		add("review_status = $%d", filter.Status)
	}
	if !filter.From.IsZero() {
		add("created_at >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("created_at <= $%d", filter.To)
	}

	query := `
		SELECT id, complaint, sentiment, score, department, review_status, created_at
		FROM complaints
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var recs []*domain.ComplaintRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	return recs, nil
}

// UpdateReviewStatus sets the review status of one complaint. It touches
// no other column. Returns false when the complaint does not exist.
func (r *ComplaintsRepository) UpdateReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) (bool, error) {
	query := `
		UPDATE complaints
		SET review_status = $1
		WHERE id = $2
	`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update review status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// Delete permanently removes one complaint. Returns false when the
// complaint does not exist.
func (r *ComplaintsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete complaint: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// GetStats retrieves overall complaint statistics.
func (r *ComplaintsRepository) GetStats(ctx context.Context) (*ComplaintStats, error) {
	var stats ComplaintStats

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN sentiment = 'Negative' THEN 1 ELSE 0 END), 0) as negative,
			COALESCE(SUM(CASE WHEN review_status = 'Pending Review' THEN 1 ELSE 0 END), 0) as pending_review
		FROM complaints
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Negative,
		&stats.PendingReview,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint stats: %w", err)
	}

	return &stats, nil
}

// GetDepartmentStats retrieves complaint volume per department.
func (r *ComplaintsRepository) GetDepartmentStats(ctx context.Context) ([]*DepartmentStat, error) {
	var stats []*DepartmentStat

	query := `
		SELECT department, COUNT(*) as count
		FROM complaints
		GROUP BY department
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}

	return stats, nil
}

// GetSentimentStats retrieves complaint volume per sentiment label.
func (r *ComplaintsRepository) GetSentimentStats(ctx context.Context) ([]*SentimentStat, error) {
	var stats []*SentimentStat

	query := `
		SELECT sentiment, COUNT(*) as count
		FROM complaints
		GROUP BY sentiment
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get sentiment stats: %w", err)
	}

	return stats, nil
}

// GetDailyCounts retrieves complaint volume per day for the most recent
// days, newest first.
func (r *ComplaintsRepository) GetDailyCounts(ctx context.Context, days int) ([]*DailyCount, error) {
	var counts []*DailyCount

	query := `
		SELECT CAST(DATE(created_at) AS TEXT) as day, COUNT(*) as count
		FROM complaints
		GROUP BY DATE(created_at)
		ORDER BY day DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &counts, query, days); err != nil {
		return nil, fmt.Errorf("failed to get daily counts: %w", err)
	}

	return counts, nil
}
