package scoring

import (
	"strings"

	"github.com/hellothere012/ghostbrief/internal/model"
)

// Tier base credibility scores.
const (
	tier1Base   = 90.0
	tier2Base   = 75.0
	tier3Base   = 60.0
	tier4Base   = 40.0
	unknownBase = 50.0
)

// SourceScorer maps a document's declared source onto the credibility
// matrix.
type SourceScorer struct {
	matrix CredibilityMatrix
}

// NewSourceScorer builds a scorer over the given matrix.
func NewSourceScorer(matrix CredibilityMatrix) *SourceScorer {
	return &SourceScorer{matrix: matrix}
}

// Score returns the source credibility score, 0-100.
//
// The feed-provided credibility wins when present; otherwise the domain's
// tier base applies. Official (.gov/.mil), academic (.edu), and
// institutional (.int) domains earn bonuses; warning indicators in the
// domain or display name are penalized.
func (s *SourceScorer) Score(src model.Source) float64 {
	score := src.Credibility
	if score == 0 {
		score = s.TierBase(src.Domain)
	}

	domain := strings.ToLower(src.Domain)
	switch {
	case strings.HasSuffix(domain, ".gov") || strings.HasSuffix(domain, ".mil"):
		score += 10
	case strings.HasSuffix(domain, ".edu"):
		score += 8
	case strings.HasSuffix(domain, ".int"):
		score += 5
	}

	haystack := domain + " " + strings.ToLower(src.Name)
	score -= 25 * float64(countIndicators(haystack, s.matrix.PropagandaIndicators))
	score -= 25 * float64(countIndicators(haystack, s.matrix.FabricationIndicators))
	score -= 10 * float64(countIndicators(haystack, s.matrix.CommercialIndicators))

	return clamp(score)
}

// TierBase returns the base credibility for a domain per the matrix.
func (s *SourceScorer) TierBase(domain string) float64 {
	switch s.Tier(domain) {
	case 1:
		return tier1Base
	case 2:
		return tier2Base
	case 3:
		return tier3Base
	case 4:
		return tier4Base
	default:
		return unknownBase
	}
}

// Tier returns the matrix tier of a domain (1-4), or 0 when unlisted.
// Matching is by suffix so subdomains inherit their parent's tier.
func (s *SourceScorer) Tier(domain string) int {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return 0
	}
	// Tier order matters: the best tier that matches wins.
	tiers := [][]string{s.matrix.Tier1, s.matrix.Tier2, s.matrix.Tier3, s.matrix.Tier4}
	for i, list := range tiers {
		for _, d := range list {
			if domain == d || strings.HasSuffix(domain, "."+d) {
				return i + 1
			}
		}
	}
	return 0
}

func countIndicators(haystack string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(haystack, ind) {
			n++
		}
	}
	return n
}
