package classifier

import (
	"context"
	"time"

	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/sentiment"
	"github.com/complaintdesk/classifier/internal/telemetry"
)

// Pipeline runs the fixed classification sequence: sentiment score,
// then department routing, then record assembly. It never fails; any
// internal failure coerces the department to Others while keeping
// whatever sentiment was computed.
type Pipeline struct {
	analyzer  *sentiment.Analyzer
	router    *Router
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewPipeline creates a Pipeline. tp may be nil.
func NewPipeline(analyzer *sentiment.Analyzer, router *Router, log logger.Logger, tp *telemetry.Provider) *Pipeline {
	return &Pipeline{
		analyzer:  analyzer,
		router:    router,
		logger:    log,
		telemetry: tp,
	}
}

// Classify produces a ComplaintRecord for text. The record carries no
// ID; the persistence layer assigns one on first insert. CreatedAt is
// stamped here at second precision.
func (p *Pipeline) Classify(ctx context.Context, text string) (record domain.ComplaintRecord) {
	start := time.Now()

	record = domain.ComplaintRecord{
		Text:         text,
		Sentiment:    domain.SentimentNeutral,
		Department:   domain.DepartmentOthers,
		ReviewStatus: domain.StatusPendingReview,
	}
	defer func() {
		if rec := recover(); rec != nil {
			// A single bad submission must never take the service
			// down; the record falls back to the defaults above.
			p.logger.Error("classification panicked, using safe defaults",
				logger.Any("panic", rec))
		}
		record.CreatedAt = time.Now().Truncate(time.Second)
		if p.telemetry != nil {
			p.telemetry.RecordClassification(string(record.Department), time.Since(start))
		}
	}()

	scored := p.analyzer.Score(text)
	record.Sentiment = scored.Label
	record.Score = scored.Compound

	route := p.router.Route(ctx, text)
	record.Department = route.Department
	if route.ForceNegative {
		// Theft/dispute routing forces the label; the raw compound
		// score is preserved on the record.
		record.Sentiment = domain.SentimentNegative
	}

	p.logger.Debug("complaint classified",
		logger.String("department", string(record.Department)),
		logger.String("sentiment", string(record.Sentiment)),
		logger.Float64("score", record.Score),
		logger.String("method", route.Method))

	return record
}
