package scoring

import "strings"

// Threat levels derived from the escalation-weighted threat score.
const (
	ThreatCritical = "CRITICAL"
	ThreatHigh     = "HIGH"
	ThreatMedium   = "MEDIUM"
	ThreatLow      = "LOW"
)

// ThreatAssessment is the result of scanning text against the per-category
// threat keyword sets.
type ThreatAssessment struct {
	Score      float64        // 0-100, escalation-weighted
	Level      string         // CRITICAL/HIGH/MEDIUM/LOW
	Categories map[string]int // category name -> match count, only matched categories
}

// ThreatAssessor scans text for category threat keywords and derives an
// escalation-weighted score and level.
type ThreatAssessor struct {
	categories []ThreatCategory
}

// NewThreatAssessor builds an assessor over the given categories.
func NewThreatAssessor(categories []ThreatCategory) *ThreatAssessor {
	return &ThreatAssessor{categories: categories}
}

// Assess scores the text. Each keyword match contributes 10 points scaled by
// the category's escalation weight, summed across categories and clamped.
func (a *ThreatAssessor) Assess(text string) ThreatAssessment {
	lower := strings.ToLower(text)

	total := 0.0
	matched := make(map[string]int)
	for _, cat := range a.categories {
		n := tierMatches(lower, cat.Keywords)
		if n == 0 {
			continue
		}
		matched[cat.Name] = n
		total += float64(n) * 10 * cat.Weight
	}

	score := clamp(total)
	return ThreatAssessment{
		Score:      score,
		Level:      threatLevel(score),
		Categories: matched,
	}
}

func threatLevel(score float64) string {
	switch {
	case score >= 75:
		return ThreatCritical
	case score >= 50:
		return ThreatHigh
	case score >= 25:
		return ThreatMedium
	default:
		return ThreatLow
	}
}
