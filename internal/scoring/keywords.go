package scoring

import (
	"math"
	"strings"
)

// KeywordScorer scores raw text against the four weighted keyword tiers.
type KeywordScorer struct {
	tiers KeywordTiers
}

// NewKeywordScorer builds a scorer over the given tiers.
func NewKeywordScorer(tiers KeywordTiers) *KeywordScorer {
	return &KeywordScorer{tiers: tiers}
}

// Score returns the keyword tier score for the text, 0-100.
//
// Each keyword match contributes matches * tierWeight * 0.1. Totals above 80
// are compressed logarithmically (80 + ln(total-80)*10) so keyword-stuffed
// text saturates instead of dominating. A flat bonus of +15/+10/+5 is added
// for the highest tier that matched at all.
func (s *KeywordScorer) Score(text string) float64 {
	lower := strings.ToLower(text)

	critical := tierMatches(lower, s.tiers.Critical)
	high := tierMatches(lower, s.tiers.High)
	medium := tierMatches(lower, s.tiers.Medium)
	low := tierMatches(lower, s.tiers.Low)

	total := float64(critical)*TierCriticalWeight*0.1 +
		float64(high)*TierHighWeight*0.1 +
		float64(medium)*TierMediumWeight*0.1 +
		float64(low)*TierLowWeight*0.1

	if total > 80 {
		total = 80 + math.Log(total-80)*10
	}

	switch {
	case critical > 0:
		total += 15
	case high > 0:
		total += 10
	case medium > 0:
		total += 5
	}

	return clamp(total)
}

// tierMatches counts occurrences of every tier keyword in the text.
func tierMatches(lower string, keywords []string) int {
	matches := 0
	for _, kw := range keywords {
		matches += strings.Count(lower, strings.ToLower(kw))
	}
	return matches
}

func clamp(v float64) float64 {
	if v != v {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
