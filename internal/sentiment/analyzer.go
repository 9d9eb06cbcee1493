// Package sentiment scores complaint text with a VADER lexicon and
// derives a discrete label via strong-keyword override rules.
package sentiment

import (
	"math"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/jonreiter/govader"

	"github.com/complaintdesk/classifier/internal/domain"
)

// Label thresholds applied to the compound score when no strong
// keyword matches.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

const scorePrecision = 10000 // compound rounded to 4 decimal places

// Result is the outcome of scoring one text.
type Result struct {
	Label domain.Sentiment
	// Compound is the raw lexicon score in [-1, 1], rounded to 4
	// decimals. Keyword overrides change only the label, never this.
	Compound float64
}

// Analyzer wraps the VADER lexicon scorer and the strong-keyword
// matchers. Construct once at startup; safe for concurrent use.
type Analyzer struct {
	vader      *govader.SentimentIntensityAnalyzer
	negMatcher *ahocorasick.Matcher
	posMatcher *ahocorasick.Matcher
}

// NewAnalyzer builds an Analyzer with the embedded VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		vader:      govader.NewSentimentIntensityAnalyzer(),
		negMatcher: ahocorasick.NewStringMatcher(strongNegativeKeywords),
		posMatcher: ahocorasick.NewStringMatcher(strongPositiveKeywords),
	}
}

// Score computes the compound polarity of text and derives a label.
//
// Label priority: strong-negative keyword > strong-positive keyword >
// compound thresholds. The returned compound is always the raw lexicon
// score for the original text.
func (a *Analyzer) Score(text string) Result {
	compound := roundScore(a.vader.PolarityScores(text).Compound)
	lowered := []byte(strings.ToLower(text))

	switch {
	case len(a.negMatcher.Match(lowered)) > 0:
		return Result{Label: domain.SentimentNegative, Compound: compound}
	case len(a.posMatcher.Match(lowered)) > 0:
		return Result{Label: domain.SentimentPositive, Compound: compound}
	case compound >= positiveThreshold:
		return Result{Label: domain.SentimentPositive, Compound: compound}
	case compound <= negativeThreshold:
		return Result{Label: domain.SentimentNegative, Compound: compound}
	default:
		return Result{Label: domain.SentimentNeutral, Compound: compound}
	}
}

func roundScore(v float64) float64 {
	return math.Round(v*scorePrecision) / scorePrecision
}
