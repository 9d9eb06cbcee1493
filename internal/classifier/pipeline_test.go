package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/sentiment"
)

func newTestPipeline(pred Predictor) *Pipeline {
	log := logger.NewNop()
	return NewPipeline(sentiment.NewAnalyzer(), NewRouter(pred, log, nil), log, nil)
}

func TestClassifyTotality(t *testing.T) {
	p := newTestPipeline(&mockPredictor{err: errors.New("down")})

	texts := []string{
		"My card was charged twice",
		"fraud fraud fraud",
		"completely unrelated text about weather",
		"!!! ???",
		"धोखाधड़ी", // non-ASCII input
	}

	for _, text := range texts {
		rec := p.Classify(context.Background(), text)
		if !rec.Department.Valid() {
			t.Errorf("Classify(%q): invalid department %q", text, rec.Department)
		}
		if !rec.Sentiment.Valid() {
			t.Errorf("Classify(%q): invalid sentiment %q", text, rec.Sentiment)
		}
		if rec.ReviewStatus != domain.StatusPendingReview {
			t.Errorf("Classify(%q): status = %q, want %q", text, rec.ReviewStatus, domain.StatusPendingReview)
		}
		if rec.Text != text {
			t.Errorf("Classify(%q): text mutated to %q", text, rec.Text)
		}
		if rec.CreatedAt.IsZero() {
			t.Errorf("Classify(%q): created_at not stamped", text)
		}
	}
}

func TestClassifyTheftForcesNegativeKeepsScore(t *testing.T) {
	p := newTestPipeline(nil)

	// Lexically positive text that still routes to theft/dispute.
	rec := p.Classify(context.Background(), "Great news, the identity theft case was handled wonderfully")

	if rec.Department != domain.DepartmentTheft {
		t.Fatalf("expected %s, got %s", domain.DepartmentTheft, rec.Department)
	}
	if rec.Sentiment != domain.SentimentNegative {
		t.Errorf("expected forced Negative, got %s", rec.Sentiment)
	}
	// The override changes only the label; the positive-leaning raw
	// score must survive, not a clamped negative sentinel.
	if rec.Score <= 0 {
		t.Errorf("expected raw positive compound score to be preserved, got %v", rec.Score)
	}
}

func TestClassifyFallbackDepartment(t *testing.T) {
	p := newTestPipeline(&mockPredictor{err: errors.New("model unavailable")})

	rec := p.Classify(context.Background(), "The lobby music is far too loud")

	if rec.Department != domain.DepartmentOthers {
		t.Errorf("expected %s on model failure, got %s", domain.DepartmentOthers, rec.Department)
	}
	// Sentiment is whatever the scorer computed, not coerced.
	if !rec.Sentiment.Valid() {
		t.Errorf("invalid sentiment %q", rec.Sentiment)
	}
}

func TestClassifyCreatedAtSecondPrecision(t *testing.T) {
	p := newTestPipeline(nil)

	before := time.Now().Truncate(time.Second)
	rec := p.Classify(context.Background(), "fraud report")
	after := time.Now()

	if rec.CreatedAt.Nanosecond() != 0 {
		t.Errorf("expected second precision, got %v", rec.CreatedAt)
	}
	if rec.CreatedAt.Before(before) || rec.CreatedAt.After(after) {
		t.Errorf("created_at %v outside [%v, %v]", rec.CreatedAt, before, after)
	}
}

func TestClassifySentimentOverrideOnlyFromTheftTier(t *testing.T) {
	p := newTestPipeline(nil)

	// Credit card tier matches but must not touch the sentiment label.
	rec := p.Classify(context.Background(), "Thank you for fixing my credit card so quickly")

	if rec.Department != domain.DepartmentCreditCard {
		t.Fatalf("expected %s, got %s", domain.DepartmentCreditCard, rec.Department)
	}
	if rec.Sentiment != domain.SentimentPositive {
		t.Errorf("expected Positive from scorer, got %s", rec.Sentiment)
	}
}
