package annotate

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/hellothere012/ghostbrief/internal/model"
)

// countryAliases maps lowercase text variants to the canonical uppercase
// country entity. Capitals and demonyms count as mentions.
var countryAliases = map[string]string{
	// Major powers
	"united states": "USA", "usa": "USA", "u.s.": "USA", "america": "USA",
	"american": "USA", "washington": "USA", "pentagon": "USA",
	"china": "CHINA", "chinese": "CHINA", "prc": "CHINA", "beijing": "CHINA",
	"russia": "RUSSIA", "russian": "RUSSIA", "moscow": "RUSSIA", "kremlin": "RUSSIA",

	// Conflict zones / high news frequency
	"ukraine": "UKRAINE", "ukrainian": "UKRAINE", "kyiv": "UKRAINE", "kiev": "UKRAINE",
	"israel": "ISRAEL", "israeli": "ISRAEL", "jerusalem": "ISRAEL",
	"palestine": "PALESTINE", "palestinian": "PALESTINE", "gaza": "PALESTINE",
	"iran": "IRAN", "iranian": "IRAN", "tehran": "IRAN",
	"north korea": "NORTH KOREA", "dprk": "NORTH KOREA", "pyongyang": "NORTH KOREA",
	"south korea": "SOUTH KOREA", "seoul": "SOUTH KOREA",
	"taiwan": "TAIWAN", "taiwanese": "TAIWAN", "taipei": "TAIWAN",
	"syria": "SYRIA", "syrian": "SYRIA", "damascus": "SYRIA",
	"yemen": "YEMEN", "houthi": "YEMEN",
	"belarus": "BELARUS", "belarusian": "BELARUS", "minsk": "BELARUS",

	// Regional powers and majors
	"united kingdom": "UK", "britain": "UK", "british": "UK", "london": "UK",
	"germany": "GERMANY", "german": "GERMANY", "berlin": "GERMANY",
	"france": "FRANCE", "french": "FRANCE", "paris": "FRANCE",
	"japan": "JAPAN", "japanese": "JAPAN", "tokyo": "JAPAN",
	"india": "INDIA", "indian": "INDIA", "new delhi": "INDIA",
	"pakistan": "PAKISTAN", "pakistani": "PAKISTAN", "islamabad": "PAKISTAN",
	"turkey": "TURKEY", "turkish": "TURKEY", "ankara": "TURKEY",
	"saudi arabia": "SAUDI ARABIA", "saudi": "SAUDI ARABIA", "riyadh": "SAUDI ARABIA",
	"poland": "POLAND", "polish": "POLAND", "warsaw": "POLAND",
}

// orgAliases and the tech/weapon tables below work the same way.
var orgAliases = map[string]string{
	"nato": "NATO", "united nations": "UN", "european union": "EU",
	"cia": "CIA", "fsb": "FSB", "mossad": "MOSSAD", "iaea": "IAEA",
	"opec": "OPEC", "wagner": "WAGNER", "hezbollah": "HEZBOLLAH",
	"hamas": "HAMAS", "irgc": "IRGC", "revolutionary guard": "IRGC",
	"people's liberation army": "PLA", "pla": "PLA",
}

var techAliases = map[string]string{
	"hypersonic": "HYPERSONIC", "quantum computing": "QUANTUM",
	"artificial intelligence": "AI", "semiconductor": "SEMICONDUCTOR",
	"satellite": "SATELLITE", "stealth": "STEALTH",
	"electronic warfare": "ELECTRONIC WARFARE", "drone": "DRONE",
	"air defense": "AIR DEFENSE", "ballistic missile": "BALLISTIC MISSILE",
}

var weaponAliases = map[string]string{
	"s-400": "S-400", "s-500": "S-500", "patriot": "PATRIOT",
	"himars": "HIMARS", "javelin": "JAVELIN", "icbm": "ICBM",
	"f-35": "F-35", "f-16": "F-16", "su-57": "SU-57",
	"kinzhal": "KINZHAL", "iskander": "ISKANDER", "tomahawk": "TOMAHAWK",
}

// relevanceTerms drive the draft relevance estimate.
var relevanceTerms = []string{
	"military", "missile", "nuclear", "sanctions", "invasion", "cyberattack",
	"deployment", "intelligence", "weapons", "conflict", "treaty", "defense",
}

var adPattern = regexp.MustCompile(`(?i)(sponsored|advertisement|promo code|buy now|click here)`)

// Heuristic is the default Annotator: dictionary-driven extraction with no
// external dependency. Good enough to exercise the pipeline end to end;
// replace with an AI-backed implementation for production annotation.
type Heuristic struct{}

// NewHeuristic returns the dictionary annotator.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Annotate implements Annotator.
func (h *Heuristic) Annotate(_ context.Context, doc model.Document) (model.Entities, model.Annotation, error) {
	text := strings.ToLower(doc.Title + " " + doc.Content)

	entities := model.Entities{
		Countries:     extract(text, countryAliases),
		Organizations: extract(text, orgAliases),
		Technologies:  extract(text, techAliases),
		Weapons:       extract(text, weaponAliases),
	}

	relevance := 30.0
	for _, term := range relevanceTerms {
		if containsWord(text, term) {
			relevance += 6
		}
	}
	relevance += float64(entities.Count()) * 3
	relevance = model.Clamp(relevance)

	annot := model.Annotation{
		Relevance:    relevance,
		RelevanceSet: true,
		Confidence:   50,
		Priority:     model.PriorityLow,
		IsAd:         adPattern.MatchString(doc.Title + " " + doc.Content),
	}
	return entities, annot, nil
}

// extract returns the canonical entities whose aliases appear in the text as
// whole words, sorted for determinism.
func extract(lower string, aliases map[string]string) []string {
	seen := make(map[string]bool)
	for alias, canonical := range aliases {
		if !seen[canonical] && containsWord(lower, alias) {
			seen[canonical] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for canonical := range seen {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// containsWord checks for a whole-word match, so "iran" does not match
// inside "veteran".
func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		leftOK := idx == 0 || !isAlphaNum(text[idx-1])
		end := idx + len(word)
		rightOK := end >= len(text) || !isAlphaNum(text[end])
		if leftOK && rightOK {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
