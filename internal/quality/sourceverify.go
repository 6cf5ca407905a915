package quality

import (
	"fmt"
	"strings"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/scoring"
)

// Warning flag severities.
const (
	FlagCritical = "CRITICAL"
	FlagHigh     = "HIGH"
	FlagMedium   = "MEDIUM"
)

// WarningFlag records one credibility concern about a source.
type WarningFlag struct {
	Severity string
	Reason   string
}

// SourceVerdict is the verifier's judgment of one document's source.
type SourceVerdict struct {
	Credibility float64 // final 0-100 after tier analysis and penalties
	Tier        int     // 1-4, 0 = unlisted
	Flags       []WarningFlag
	Accepted    bool
	Reason      string // non-empty when rejected
}

// Verifier performs independent source verification: domain tier, warning
// indicators, and a final credibility verdict.
type Verifier struct {
	scorer         *scoring.SourceScorer
	matrix         scoring.CredibilityMatrix
	minCredibility float64
}

// NewVerifier builds a verifier over the shared credibility matrix.
func NewVerifier(matrix scoring.CredibilityMatrix, minCredibility float64) *Verifier {
	return &Verifier{
		scorer:         scoring.NewSourceScorer(matrix),
		matrix:         matrix,
		minCredibility: minCredibility,
	}
}

// Verify checks a document's source. Rejection happens on final credibility
// below the configured floor or on any CRITICAL or HIGH warning flag.
func (v *Verifier) Verify(doc model.Document) SourceVerdict {
	verdict := SourceVerdict{
		Credibility: v.scorer.Score(doc.Source),
		Tier:        v.scorer.Tier(doc.Source.Domain),
	}

	haystack := strings.ToLower(doc.Source.Domain + " " + doc.Source.Name)
	body := strings.ToLower(doc.Content)

	for _, ind := range v.matrix.PropagandaIndicators {
		if strings.Contains(haystack, ind) {
			verdict.Flags = append(verdict.Flags, WarningFlag{
				Severity: FlagCritical,
				Reason:   fmt.Sprintf("propaganda indicator %q", ind),
			})
		}
	}
	for _, ind := range v.matrix.FabricationIndicators {
		if strings.Contains(haystack, ind) || strings.Contains(body, ind) {
			verdict.Flags = append(verdict.Flags, WarningFlag{
				Severity: FlagHigh,
				Reason:   fmt.Sprintf("fabrication indicator %q", ind),
			})
		}
	}
	for _, ind := range v.matrix.CommercialIndicators {
		if strings.Contains(haystack, ind) {
			verdict.Flags = append(verdict.Flags, WarningFlag{
				Severity: FlagMedium,
				Reason:   fmt.Sprintf("commercial indicator %q", ind),
			})
		}
	}

	for _, flag := range verdict.Flags {
		if flag.Severity == FlagCritical || flag.Severity == FlagHigh {
			verdict.Reason = "Source warning: " + flag.Reason
			return verdict
		}
	}

	if verdict.Credibility < v.minCredibility {
		verdict.Reason = fmt.Sprintf("Source credibility %.0f below minimum %.0f",
			verdict.Credibility, v.minCredibility)
		return verdict
	}

	verdict.Accepted = true
	return verdict
}
