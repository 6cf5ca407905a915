package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/quality"
)

// adIndicators reject advertising at initial screening regardless of any
// other merit the document has.
var adIndicators = []string{
	"sponsored content", "click here", "buy now", "limited time offer",
	"promo code", "affiliate link", "special offer", "subscribe today",
	"advertisement",
}

// Intelligence-assessment priority bonuses.
var priorityBonus = map[model.Priority]float64{
	model.PriorityCritical: 20,
	model.PriorityHigh:     15,
	model.PriorityMedium:   5,
	model.PriorityLow:      0,
}

// screen is stage 1: cheap structural rejections before any scoring work.
// Checks run in a fixed order so a document failing several always gets the
// same single reason.
func (p *Pipeline) screen(states []*docState, working []int, now time.Time) []int {
	var passed []int
	for _, i := range working {
		st := states[i]
		doc := st.doc

		reason := ""
		switch {
		case len(doc.Content) < p.thresholds.MinContentChars:
			reason = "Insufficient content length"
		case adMatch(doc) != "":
			reason = fmt.Sprintf("Advertisement content (%s)", adMatch(doc))
		case doc.Annot.IsDuplicate:
			reason = "Flagged as duplicate by annotator"
		case doc.Annot.RelevanceSet && doc.Annot.Relevance < p.thresholds.MinDraftRelevance:
			reason = fmt.Sprintf("Draft relevance %.0f below minimum %.0f",
				doc.Annot.Relevance, p.thresholds.MinDraftRelevance)
		case doc.Age(now) > p.thresholds.MaxAge:
			reason = fmt.Sprintf("Content older than %v", p.thresholds.MaxAge)
		case strings.TrimSpace(doc.Title) == "":
			reason = "Missing title"
		case strings.TrimSpace(doc.URL) == "":
			reason = "Missing URL"
		}

		if reason != "" {
			st.reject(StageScreening, reason)
			st.verdicts = append(st.verdicts, model.QualityVerdict{
				Stage: StageScreening, Reason: reason,
			})
			continue
		}

		st.verdicts = append(st.verdicts, model.QualityVerdict{Stage: StageScreening})
		passed = append(passed, i)
	}
	return passed
}

func adMatch(doc model.Document) string {
	if doc.Annot.IsAd {
		return "annotator flag"
	}
	haystack := strings.ToLower(doc.Title + " " + doc.Content)
	for _, ind := range adIndicators {
		if strings.Contains(haystack, ind) {
			return ind
		}
	}
	return ""
}

// analyzeContent is stage 2: the independent content-quality gate.
func (p *Pipeline) analyzeContent(states []*docState, working []int, _ time.Time) []int {
	var passed []int
	for _, i := range working {
		st := states[i]
		report := quality.AnalyzeContent(st.doc)
		st.contentScore = report.Overall

		verdict := model.QualityVerdict{
			Stage: StageContent,
			Score: report.Overall,
			Level: report.Level,
		}
		if report.Overall < p.thresholds.ContentGate {
			verdict.Reason = fmt.Sprintf("Content quality %.0f below gate %.0f (%s)",
				report.Overall, p.thresholds.ContentGate, report.Level)
			st.reject(StageContent, verdict.Reason)
			st.verdicts = append(st.verdicts, verdict)
			continue
		}
		st.verdicts = append(st.verdicts, verdict)
		passed = append(passed, i)
	}
	return passed
}

// verifySources is stage 3: independent source verification.
func (p *Pipeline) verifySources(states []*docState, working []int, _ time.Time) []int {
	var passed []int
	for _, i := range working {
		st := states[i]
		verdict := p.verifier.Verify(st.doc)
		st.sourceScore = verdict.Credibility

		qv := model.QualityVerdict{
			Stage: StageSource,
			Score: verdict.Credibility,
			Level: fmt.Sprintf("TIER_%d", verdict.Tier),
		}
		if verdict.Tier == 0 {
			qv.Level = "UNLISTED"
		}
		if !verdict.Accepted {
			qv.Reason = verdict.Reason
			st.reject(StageSource, verdict.Reason)
			st.verdicts = append(st.verdicts, qv)
			continue
		}
		st.verdicts = append(st.verdicts, qv)
		passed = append(passed, i)
	}
	return passed
}

// deduplicate is stage 4: pairwise duplicate detection over the survivors.
func (p *Pipeline) deduplicate(states []*docState, working []int, now time.Time, report *model.PipelineReport) []int {
	docs := make([]model.Document, len(working))
	for k, i := range working {
		docs[k] = states[i].doc
	}

	result := p.detector.detect(docs, now)
	report.Clusters = append(report.Clusters, result.clusters...)

	retained := make(map[int]bool, len(result.retained))
	for _, k := range result.retained {
		retained[k] = true
	}

	var passed []int
	for k, i := range working {
		st := states[i]
		if retained[k] {
			st.verdicts = append(st.verdicts, model.QualityVerdict{Stage: StageDuplicates})
			passed = append(passed, i)
			continue
		}

		primary := states[working[result.duplicateOf[k]]]
		st.duplicateOf = primary.doc.ID
		reason := fmt.Sprintf("Duplicate of %s", primary.doc.ID)
		st.reject(StageDuplicates, reason)
		st.verdicts = append(st.verdicts, model.QualityVerdict{
			Stage: StageDuplicates, Reason: reason,
		})
	}
	return passed
}

// scoreQuality is stage 5: run the multi-factor combiner over the surviving
// set (survivors are each other's cross-reference window), then gate on the
// overall-quality composite.
func (p *Pipeline) scoreQuality(states []*docState, working []int, now time.Time) []int {
	siblings := make([]model.Document, len(working))
	for k, i := range working {
		siblings[k] = states[i].doc
	}

	var passed []int
	for _, i := range working {
		st := states[i]
		st.breakdown = p.combiner.Score(st.doc, siblings, now)
		st.scored = true

		st.qualityScore = model.Clamp(
			st.breakdown.Overall*0.3 +
				st.breakdown.Confidence*0.2 +
				st.sourceScore*0.2 +
				st.contentScore*0.2 +
				st.breakdown.Temporal*0.1)

		verdict := model.QualityVerdict{Stage: StageQuality, Score: st.qualityScore}
		if st.qualityScore < p.thresholds.QualityGate {
			verdict.Reason = fmt.Sprintf("Overall quality %.0f below gate %.0f",
				st.qualityScore, p.thresholds.QualityGate)
			st.reject(StageQuality, verdict.Reason)
			st.verdicts = append(st.verdicts, verdict)
			continue
		}
		st.verdicts = append(st.verdicts, verdict)
		passed = append(passed, i)
	}
	return passed
}

// assessIntelligence is stage 6: score intelligence value on top of the
// breakdown and gate on it.
func (p *Pipeline) assessIntelligence(states []*docState, working []int, _ time.Time) []int {
	var passed []int
	for _, i := range working {
		st := states[i]
		b := st.breakdown

		value := b.Overall + priorityBonus[b.Priority]

		// Entity richness: +2 per entity up to +10.
		richness := float64(st.doc.Entities.Count()) * 2
		if richness > 10 {
			richness = 10
		}
		value += richness

		if b.Threat >= 50 {
			value += 10
		}
		if b.Strategic >= 60 {
			value += 5
		}
		st.intelValue = model.Clamp(value)

		verdict := model.QualityVerdict{Stage: StageIntelligence, Score: st.intelValue}
		if st.intelValue < p.thresholds.IntelligenceGate {
			verdict.Reason = fmt.Sprintf("Intelligence value %.0f below gate %.0f",
				st.intelValue, p.thresholds.IntelligenceGate)
			st.reject(StageIntelligence, verdict.Reason)
			st.verdicts = append(st.verdicts, verdict)
			continue
		}
		st.verdicts = append(st.verdicts, verdict)
		passed = append(passed, i)
	}
	return passed
}

// validateFinal is stage 7: the weighted final check and signal grading.
func (p *Pipeline) validateFinal(states []*docState, working []int, _ time.Time) []int {
	var passed []int
	for _, i := range working {
		st := states[i]
		st.finalScore = model.Clamp(
			st.qualityScore*0.3 +
				st.intelValue*0.3 +
				st.contentScore*0.2 +
				st.sourceScore*0.2)

		verdict := model.QualityVerdict{Stage: StageValidation, Score: st.finalScore}
		if st.finalScore < p.thresholds.FinalGate {
			verdict.Reason = fmt.Sprintf("Final score %.0f below gate %.0f",
				st.finalScore, p.thresholds.FinalGate)
			st.reject(StageValidation, verdict.Reason)
			st.verdicts = append(st.verdicts, verdict)
			continue
		}

		st.grade = grade(st.finalScore)
		verdict.Level = st.grade
		st.verdicts = append(st.verdicts, verdict)
		passed = append(passed, i)
	}
	return passed
}

func grade(finalScore float64) string {
	switch {
	case finalScore >= 90:
		return GradePremium
	case finalScore >= 80:
		return GradeHigh
	case finalScore >= 70:
		return GradeStandard
	default:
		return GradeBasic
	}
}
