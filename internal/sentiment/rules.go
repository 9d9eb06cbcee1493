package sentiment

// Strong keyword sets override the lexicon-derived label. Matching is
// substring-based against the lower-cased raw text, the same semantics
// the department tiers use.

// strongNegativeKeywords force a Negative label regardless of the
// compound score.
var strongNegativeKeywords = []string{
	"fraud", "stole", "unauthorized", "scam", "stolen", "misleading", "deceptive",
	"incorrect", "error", "issue", "unacceptable", "frustrating", "dispute",
	"complaint", "problem", "wrong", "never received", "overcharged", "lost", "failed",
	"difficult", "unable", "bad", "poor", "missing", "denied", "refused",
}

// strongPositiveKeywords force a Positive label when no strong-negative
// keyword is present.
var strongPositiveKeywords = []string{
	"excellent", "helpful", "resolved", "happy", "satisfied", "smooth", "efficient",
	"great", "thank you", "appreciate", "best service", "easy to use", "good",
	"quick", "fast", "seamless", "pleased", "impressed", "love",
}
