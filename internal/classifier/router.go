// Package classifier routes complaint text to a department through an
// ordered keyword-tier cascade with a trained-model fallback.
package classifier

import (
	"context"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/complaintdesk/classifier/internal/domain"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/telemetry"
	"github.com/complaintdesk/classifier/internal/textnorm"
)

// Routing methods recorded on results and metrics.
const (
	MethodKeyword = "keyword_tier"
	MethodModel   = "model_fallback"
	MethodDefault = "fallback_default"
)

// Tier names, in cascade order. Security/fraud routes first: false
// negatives there are the costliest.
const (
	TierTheftDispute = "theft_dispute"
	TierCreditCard   = "credit_card"
	TierLoans        = "mortgages_loans"
	TierBankAccount  = "bank_account"
)

// Predictor is the trained-model capability used only when no keyword
// tier matches. Implementations return the model's raw label text.
type Predictor interface {
	Predict(ctx context.Context, text string) (string, error)
}

// RouteResult is the outcome of routing one complaint.
type RouteResult struct {
	Department domain.Department
	// ForceNegative is set by the theft/dispute tier: the caller must
	// replace the sentiment label (the raw score stays untouched).
	ForceNegative bool
	Method        string
	Tier          string // matched tier name, empty on the model path
	ModelLabel    string // raw model label, set only on the model path
}

type tier struct {
	name          string
	department    domain.Department
	matcher       *ahocorasick.Matcher
	forceNegative bool
}

// Router evaluates the keyword tiers and, when none match, normalizes
// the text and consults the model. Construct once; tiers are immutable
// after construction, so a Router is safe for concurrent use.
type Router struct {
	tiers     []tier
	predictor Predictor
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewRouter creates a Router. predictor may be nil: the fallback then
// always resolves to Others, matching a missing model artifact.
func NewRouter(predictor Predictor, log logger.Logger, tp *telemetry.Provider) *Router {
	return &Router{
		tiers:     newTiers(),
		predictor: predictor,
		logger:    log,
		telemetry: tp,
	}
}

func newTiers() []tier {
	return []tier{
		{
			name:          TierTheftDispute,
			department:    domain.DepartmentTheft,
			matcher:       ahocorasick.NewStringMatcher(theftDisputeKeywords),
			forceNegative: true,
		},
		{
			name:       TierCreditCard,
			department: domain.DepartmentCreditCard,
			matcher:    ahocorasick.NewStringMatcher(creditCardKeywords),
		},
		{
			name:       TierLoans,
			department: domain.DepartmentLoans,
			matcher:    ahocorasick.NewStringMatcher(mortgagesLoansKeywords),
		},
		{
			name:       TierBankAccount,
			department: domain.DepartmentBankAccount,
			matcher:    ahocorasick.NewStringMatcher(bankAccountKeywords),
		},
	}
}

// Route resolves text to exactly one department. It never returns an
// error: model failures fail open to Others and are surfaced as
// operator warnings only.
func (r *Router) Route(ctx context.Context, text string) RouteResult {
	lowered := []byte(strings.ToLower(text))

	for _, t := range r.tiers {
		if len(t.matcher.Match(lowered)) > 0 {
			if r.telemetry != nil {
				r.telemetry.RecordRoute(t.name)
			}
			return RouteResult{
				Department:    t.department,
				ForceNegative: t.forceNegative,
				Method:        MethodKeyword,
				Tier:          t.name,
			}
		}
	}

	return r.routeByModel(ctx, text)
}

func (r *Router) routeByModel(ctx context.Context, text string) RouteResult {
	if r.predictor == nil {
		r.logger.Warn("model predictor not configured, routing to default department")
		if r.telemetry != nil {
			r.telemetry.RecordFallbackError("unconfigured")
		}
		return RouteResult{Department: domain.DepartmentOthers, Method: MethodDefault}
	}

	label, err := r.predictor.Predict(ctx, textnorm.Normalize(text))
	if err != nil {
		r.logger.Warn("model prediction failed, routing to default department",
			logger.Error(err))
		if r.telemetry != nil {
			r.telemetry.RecordFallbackError("predict_error")
		}
		return RouteResult{Department: domain.DepartmentOthers, Method: MethodDefault}
	}

	if r.telemetry != nil {
		r.telemetry.RecordRoute(MethodModel)
	}
	return RouteResult{
		Department: mapModelLabel(label),
		Method:     MethodModel,
		ModelLabel: label,
	}
}

// mapModelLabel adapts the model's free-form label space onto the fixed
// department set with literal substring checks. The model was trained
// on a superset of product categories; anything unrecognized lands in
// Others.
func mapModelLabel(label string) domain.Department {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "credit card") || strings.Contains(l, "prepaid card"):
		return domain.DepartmentCreditCard
	case strings.Contains(l, "bank account") || strings.Contains(l, "checking") ||
		strings.Contains(l, "savings") || strings.Contains(l, "money transfer"):
		return domain.DepartmentBankAccount
	case strings.Contains(l, "mortgage") || strings.Contains(l, "loan"):
		return domain.DepartmentLoans
	case strings.Contains(l, "debt collection") || strings.Contains(l, "credit reporting") ||
		strings.Contains(l, "consumer reports"):
		return domain.DepartmentTheft
	default:
		return domain.DepartmentOthers
	}
}
