package scoring

import (
	"strings"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/similarity"
)

// Secondary-factor keyword sets. These are linguistic signals rather than
// domain configuration, so they live here instead of in Tables.
var (
	attributionPhrases = []string{
		"according to", "officials said", "officials say", "confirmed",
		"sources said", "reported by", "spokesperson", "in a statement",
		"told reporters", "announced",
	}

	hedgingPhrases = []string{
		"allegedly", "reportedly", "unconfirmed", "rumored", "could not be verified",
	}

	operationalTerms = []string{
		"deployment", "deployed", "operation", "exercise", "mobilization",
		"readiness", "maneuvers", "offensive", "withdrawal", "reinforcement",
		"strike", "patrol", "incursion",
	}

	strategicTerms = []string{
		"doctrine", "alliance", "treaty", "deterrence", "strategic",
		"balance of power", "sphere of influence", "proliferation",
		"first strike", "escalation ladder", "containment",
	}
)

// ContentDepth scores how substantive the body text is, 0-100. Length
// carries most of the weight; paragraph structure and concrete figures
// (numbers, dates) round it out.
func ContentDepth(text string) float64 {
	tokens := similarity.Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	// ~750 words saturates the length component.
	length := float64(len(tokens)) * 0.08
	if length > 60 {
		length = 60
	}

	paragraphs := strings.Count(strings.TrimSpace(text), "\n\n") + 1
	structure := float64(paragraphs) * 4
	if structure > 20 {
		structure = 20
	}

	figures := 0.0
	for _, tok := range tokens {
		if strings.ContainsAny(tok, "0123456789") {
			figures += 2
		}
	}
	if figures > 20 {
		figures = 20
	}

	return clamp(length + structure + figures)
}

// Linguistic scores register and sourcing quality of the prose, 0-100.
// Attribution raises it, hedging lowers it.
func Linguistic(text string) float64 {
	lower := strings.ToLower(text)

	score := 15.0
	attribution := float64(tierMatches(lower, attributionPhrases)) * 12
	if attribution > 60 {
		attribution = 60
	}
	score += attribution

	score -= float64(tierMatches(lower, hedgingPhrases)) * 8

	specificity := 0.0
	for _, tok := range similarity.Tokenize(text) {
		if strings.ContainsAny(tok, "0123456789") {
			specificity += 2
		}
	}
	if specificity > 25 {
		specificity = 25
	}
	score += specificity

	return clamp(score)
}

// Operational scores near-term military/operational relevance, 0-100.
func Operational(text string) float64 {
	lower := strings.ToLower(text)
	return clamp(float64(tierMatches(lower, operationalTerms)) * 15)
}

// Strategic scores long-horizon strategic importance, 0-100: strategy
// vocabulary plus major-power involvement.
func (s *EntityScorer) Strategic(text string, countries []string) float64 {
	lower := strings.ToLower(text)
	score := float64(tierMatches(lower, strategicTerms)) * 12

	for _, c := range countries {
		if s.majorPowers[c] {
			score += 10
		}
	}

	return clamp(score)
}

// CrossReference scores corroboration against a window of recent sibling
// documents, 0-100. Each sibling covering the same story (entity overlap or
// similar title) adds +15 over a baseline of 40. With no siblings at all the
// baseline stands: absence of corroboration is not evidence against.
func CrossReference(doc model.Document, siblings []model.Document) float64 {
	score := 40.0
	for _, sib := range siblings {
		if sib.ID == doc.ID {
			continue
		}
		entityMatch := doc.Entities.Count() > 0 && sib.Entities.Count() > 0 &&
			similarity.EntityOverlap(doc.Entities.All(), sib.Entities.All()) >= 0.3
		titleMatch := similarity.TextSimilarity(
			similarity.NormalizeTitle(doc.Title), similarity.NormalizeTitle(sib.Title)) >= 0.5
		if entityMatch || titleMatch {
			score += 15
		}
	}
	return clamp(score)
}
