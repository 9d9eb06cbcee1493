// Package domain defines the core types shared across the complaint
// classification service.
package domain

import (
	"fmt"
	"time"
)

// Department is one of the five fixed routing targets for a complaint.
// The string values are the wire/storage representation and match the
// department names shown to reviewers.
type Department string

const (
	DepartmentCreditCard  Department = "Credit card / Prepaid card"
	DepartmentBankAccount Department = "Bank account services"
	DepartmentTheft       Department = "Theft/Dispute reporting"
	DepartmentLoans       Department = "Mortgages/loans"
	DepartmentOthers      Department = "Others"
)

// Departments lists every routing target. Others is the universal
// fallback: every complaint resolves to exactly one entry of this set.
var Departments = []Department{
	DepartmentCreditCard,
	DepartmentBankAccount,
	DepartmentTheft,
	DepartmentLoans,
	DepartmentOthers,
}

// Valid reports whether d is a member of the fixed department set.
func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Sentiment is the discrete polarity label attached to a complaint.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// ReviewStatus tracks the manual review lifecycle of a persisted
// complaint. It is the only mutable field on a record.
type ReviewStatus string

const (
	StatusPendingReview  ReviewStatus = "Pending Review"
	StatusActionTaken    ReviewStatus = "Reviewed - Action Taken"
	StatusNoActionNeeded ReviewStatus = "Reviewed - No Action Needed"
	StatusResolved       ReviewStatus = "Resolved"
)

// ReviewStatuses lists every valid review state.
var ReviewStatuses = []ReviewStatus{
	StatusPendingReview,
	StatusActionTaken,
	StatusNoActionNeeded,
	StatusResolved,
}

// ParseReviewStatus validates a raw status string from an API request.
func ParseReviewStatus(raw string) (ReviewStatus, error) {
	for _, known := range ReviewStatuses {
		if ReviewStatus(raw) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown review status %q", raw)
}

// ComplaintRecord is the unit of classification and persistence.
//
// Text is stored exactly as submitted (untrimmed); the duplicate guard
// trims its own copy for comparisons. Score is always the raw lexicon
// compound score, even when a keyword rule forced the Sentiment label.
type ComplaintRecord struct {
	ID           int64        `db:"id"            json:"id,omitempty"`
	Text         string       `db:"complaint"     json:"complaint"`
	Sentiment    Sentiment    `db:"sentiment"     json:"sentiment"`
	Score        float64      `db:"score"         json:"score"`
	Department   Department   `db:"department"    json:"department"`
	ReviewStatus ReviewStatus `db:"review_status" json:"review_status"`
	CreatedAt    time.Time    `db:"created_at"    json:"created_at"`
}
