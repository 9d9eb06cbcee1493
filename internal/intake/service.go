// Package intake owns the complaint submission path: validation, rate
// limiting, classification, duplicate suppression, and persistence.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/telemetry"
)

// Submission outcomes recorded on metrics.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeEmpty     = "empty"
	outcomeError     = "error"
)

// Classifier produces a complete record for one complaint. It never
// fails; classification faults resolve to safe defaults internally.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.ComplaintRecord
}

// ComplaintStore is the persistence capability intake needs.
type ComplaintStore interface {
	DuplicateStore
	Create(ctx context.Context, rec *domain.ComplaintRecord) error
}

// Service runs the submission sequence. Each outcome is distinguishable
// to the caller: ErrEmptyComplaint, ErrDuplicate, or a wrapped store
// error; anything else succeeded.
type Service struct {
	classifier Classifier
	guard      *DuplicateGuard
	store      ComplaintStore
	limiter    *RateLimiter
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// NewService creates an intake Service. tp may be nil.
func NewService(classifier Classifier, store ComplaintStore, window time.Duration,
	limiter *RateLimiter, log logger.Logger, tp *telemetry.Provider,
) *Service {
	return &Service{
		classifier: classifier,
		guard:      NewDuplicateGuard(store, window),
		store:      store,
		limiter:    limiter,
		logger:     log,
		telemetry:  tp,
	}
}

// Submit validates, classifies, deduplicates, and persists one
// complaint. The stored text is the submission verbatim; only the
// duplicate comparison trims it.
func (s *Service) Submit(ctx context.Context, text string) (*domain.ComplaintRecord, error) {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		s.recordOutcome(outcomeEmpty, start)
		return nil, ErrEmptyComplaint
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.recordOutcome(outcomeError, start)
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	rec := s.classifier.Classify(ctx, text)

	if err := s.guard.Check(ctx, text); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.logger.Info("duplicate complaint suppressed")
			if s.telemetry != nil {
				s.telemetry.RecordDuplicate()
			}
			s.recordOutcome(outcomeDuplicate, start)
			return nil, ErrDuplicate
		}
		s.recordOutcome(outcomeError, start)
		return nil, err
	}

	if err := s.store.Create(ctx, &rec); err != nil {
		s.logger.Error("failed to persist complaint", logger.Error(err))
		if s.telemetry != nil {
			s.telemetry.RecordSubmissionError("persist")
		}
		s.recordOutcome(outcomeError, start)
		return nil, fmt.Errorf("persist complaint: %w", err)
	}

	s.logger.Info("complaint accepted",
		logger.Int64("id", rec.ID),
		logger.String("department", string(rec.Department)),
		logger.String("sentiment", string(rec.Sentiment)))
	if s.telemetry != nil {
		s.telemetry.RecordSentiment(string(rec.Sentiment))
	}
	s.recordOutcome(outcomeAccepted, start)

	return &rec, nil
}

func (s *Service) recordOutcome(outcome string, start time.Time) {
	if s.telemetry != nil {
		s.telemetry.RecordSubmission(outcome, time.Since(start))
	}
}
