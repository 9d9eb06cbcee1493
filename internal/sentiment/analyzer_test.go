package sentiment

import (
	"math"
	"testing"

	"github.com/complaintdesk/classifier/internal/domain"
)

func TestScoreStrongNegativeOverride(t *testing.T) {
	a := NewAnalyzer()

	// Lexically positive text with a strong-negative keyword. The
	// keyword must win regardless of the compound score.
	res := a.Score("The process was smooth but there was an error")
	if res.Label != domain.SentimentNegative {
		t.Errorf("expected Negative, got %s", res.Label)
	}
}

func TestScoreNegativeKeywordCaseInsensitive(t *testing.T) {
	a := NewAnalyzer()

	res := a.Score("This is UNACCEPTABLE")
	if res.Label != domain.SentimentNegative {
		t.Errorf("expected Negative for upper-cased keyword, got %s", res.Label)
	}
}

func TestScoreStrongPositive(t *testing.T) {
	a := NewAnalyzer()

	res := a.Score("Thank you, the agent was very helpful")
	if res.Label != domain.SentimentPositive {
		t.Errorf("expected Positive, got %s", res.Label)
	}
}

func TestScoreNegativeBeatsPositiveKeyword(t *testing.T) {
	a := NewAnalyzer()

	// Both keyword sets match; negative has strict priority.
	res := a.Score("Support was helpful but my card payment failed")
	if res.Label != domain.SentimentNegative {
		t.Errorf("expected Negative when both keyword sets match, got %s", res.Label)
	}
}

func TestScoreThresholdFallback(t *testing.T) {
	a := NewAnalyzer()

	// No strong keyword in either direction; label comes from the
	// compound thresholds.
	res := a.Score("The atm is near the branch office")
	if res.Label != domain.SentimentNeutral {
		t.Errorf("expected Neutral for flat text, got %s (compound %v)", res.Label, res.Compound)
	}
}

func TestScoreCompoundRoundedAndBounded(t *testing.T) {
	a := NewAnalyzer()

	texts := []string{
		"absolutely terrible awful horrendous experience, worst ever!!!",
		"wonderful amazing fantastic, truly delightful",
		"the branch is on main street",
		"",
	}

	for _, text := range texts {
		res := a.Score(text)
		if res.Compound < -1.0 || res.Compound > 1.0 {
			t.Errorf("compound out of range for %q: %v", text, res.Compound)
		}
		rounded := math.Round(res.Compound*10000) / 10000
		if res.Compound != rounded {
			t.Errorf("compound not rounded to 4 decimals for %q: %v", text, res.Compound)
		}
		if !res.Label.Valid() {
			t.Errorf("invalid label for %q: %q", text, res.Label)
		}
	}
}

func TestScoreOverrideKeepsRawScore(t *testing.T) {
	a := NewAnalyzer()

	// "smooth" is also a VADER-positive token; the forced Negative
	// label must not touch the numeric score.
	withKeyword := a.Score("Everything was smooth and great until the billing error")
	if withKeyword.Label != domain.SentimentNegative {
		t.Fatalf("expected Negative label, got %s", withKeyword.Label)
	}
	if withKeyword.Compound <= negativeThreshold {
		t.Errorf("expected raw compound untouched by override, got %v", withKeyword.Compound)
	}
}
