// Package quality holds the independent quality gates: the content analyzer
// and the source verifier. Both are separate from intelligence scoring. A
// document can be high-value intelligence from a weak source, or polished
// prose about nothing, and the gates tell those apart.
package quality

import (
	"strings"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/scoring"
	"github.com/hellothere012/ghostbrief/internal/similarity"
)

// Content quality levels.
const (
	LevelExcellent  = "EXCELLENT"
	LevelGood       = "GOOD"
	LevelFair       = "FAIR"
	LevelMarginal   = "MARGINAL"
	LevelInadequate = "INADEQUATE"
)

// qualityIndicators are phrases that mark substantive reporting.
var qualityIndicators = []string{
	"according to", "officials said", "in a statement", "data shows",
	"analysts", "investigation", "documents reviewed", "confirmed",
	"evidence", "assessment",
}

// technicalTerms signal domain-specific detail density.
var technicalTerms = []string{
	"missile", "radar", "satellite", "battalion", "brigade", "sortie",
	"payload", "warhead", "kilometers", "altitude", "frequency", "megawatt",
	"centrifuge", "reactor", "encryption", "firmware",
}

// informalisms drag the language-register score down.
var informalisms = []string{
	"lol", "omg", "crazy", "insane", "you won't believe", "epic", "!!!",
}

// ContentReport is the analyzer's verdict on one document's body text.
type ContentReport struct {
	Depth       float64
	Indicators  float64
	Technical   float64
	Register    float64
	Structure   float64
	Readability float64
	Overall     float64
	Level       string
}

// AnalyzeContent assesses content quality independently of intelligence
// value. Weights: depth 0.25, quality indicators 0.25, technical density
// 0.20, register 0.15, structure 0.10, readability 0.05.
func AnalyzeContent(doc model.Document) ContentReport {
	text := doc.Content
	lower := strings.ToLower(text)
	tokens := similarity.Tokenize(text)

	r := ContentReport{
		Depth:       scoring.ContentDepth(text),
		Indicators:  countScore(lower, qualityIndicators, 15),
		Technical:   technicalScore(lower, len(tokens)),
		Register:    registerScore(lower),
		Structure:   structureScore(text),
		Readability: readabilityScore(tokens),
	}

	r.Overall = model.Clamp(r.Depth*0.25 + r.Indicators*0.25 + r.Technical*0.20 +
		r.Register*0.15 + r.Structure*0.10 + r.Readability*0.05)
	r.Level = contentLevel(r.Overall)
	return r
}

func contentLevel(score float64) string {
	switch {
	case score >= 85:
		return LevelExcellent
	case score >= 70:
		return LevelGood
	case score >= 55:
		return LevelFair
	case score >= 40:
		return LevelMarginal
	default:
		return LevelInadequate
	}
}

// countScore awards per-phrase points, clamped.
func countScore(lower string, phrases []string, points float64) float64 {
	total := 0.0
	for _, p := range phrases {
		total += float64(strings.Count(lower, p)) * points
	}
	return model.Clamp(total)
}

// technicalScore measures domain-term density relative to length, so long
// fluff doesn't score technical just by containing one term.
func technicalScore(lower string, tokenCount int) float64 {
	if tokenCount == 0 {
		return 0
	}
	matches := 0
	for _, term := range technicalTerms {
		matches += strings.Count(lower, term)
	}
	density := float64(matches) / float64(tokenCount)
	return model.Clamp(density * 2500) // 4% density saturates
}

// registerScore starts from a formal baseline and penalizes informalisms.
func registerScore(lower string) float64 {
	score := 75.0
	for _, word := range informalisms {
		score -= float64(strings.Count(lower, word)) * 15
	}
	return model.Clamp(score)
}

// structureScore rewards paragraph breaks and sentence variety.
func structureScore(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	paragraphs := strings.Count(text, "\n\n") + 1
	sentences := strings.Count(text, ". ") + 1

	score := 30.0 + float64(paragraphs)*10
	if sentences >= 5 {
		score += 20
	}
	return model.Clamp(score)
}

// readabilityScore is a crude inverse of average token length: prose in the
// 4-7 character band reads best.
func readabilityScore(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	total := 0
	for _, tok := range tokens {
		total += len(tok)
	}
	avg := float64(total) / float64(len(tokens))

	switch {
	case avg >= 4 && avg <= 7:
		return 90
	case avg > 7 && avg <= 9:
		return 70
	case avg >= 3:
		return 60
	default:
		return 40
	}
}
