// Package model defines the data types that flow through the scoring
// pipeline: documents, their extracted entities, annotator output, and the
// score/verdict records the pipeline attaches before handing documents back
// to the caller.
package model

import (
	"strings"
	"time"
)

// Priority classifies how urgently a document should surface in a briefing.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Rank returns the ordering of a priority, LOW=0 .. CRITICAL=3.
// Unknown values rank as LOW.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Escalate raises a priority by one band, saturating at CRITICAL.
func (p Priority) Escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityCritical
	default:
		return p
	}
}

// Entities holds the entity sets extracted by the annotator. Values are
// uppercase strings; Normalize dedupes them since the annotator makes no
// uniqueness guarantee.
type Entities struct {
	Countries     []string `json:"countries,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
	Weapons       []string `json:"weapons,omitempty"`
}

// Count returns the total number of entities across all sets.
func (e Entities) Count() int {
	return len(e.Countries) + len(e.Organizations) + len(e.Technologies) + len(e.Weapons)
}

// All returns every entity in one slice, countries first.
func (e Entities) All() []string {
	out := make([]string, 0, e.Count())
	out = append(out, e.Countries...)
	out = append(out, e.Organizations...)
	out = append(out, e.Technologies...)
	out = append(out, e.Weapons...)
	return out
}

// Source describes where a document came from.
type Source struct {
	Domain      string  `json:"domain"`
	Name        string  `json:"name"`
	Credibility float64 `json:"credibility"` // 0-100, as provided by the feed layer; 0 = unknown
	Category    string  `json:"category,omitempty"`
}

// Annotation is the draft intelligence assessment produced by the external
// annotator. Every field is advisory; the pipeline may override all of them.
type Annotation struct {
	Relevance    float64  `json:"relevance"` // 0-100, valid only if RelevanceSet
	RelevanceSet bool     `json:"relevance_set"`
	Confidence   float64  `json:"confidence"`
	Priority     Priority `json:"priority,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsAd         bool     `json:"is_ad"`
	IsDuplicate  bool     `json:"is_duplicate"`
}

// Document is the unit of work for the pipeline.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"` // body text or summary, whichever the feed supplied
	URL       string     `json:"url"`
	Published time.Time  `json:"published"`
	Fetched   time.Time  `json:"fetched"`
	Source    Source     `json:"source"`
	Entities  Entities   `json:"entities"`
	Annot     Annotation `json:"annotation"`
}

// EffectiveTime returns the timestamp used for age and temporal scoring:
// the earlier of Published and Fetched, or whichever one is set, falling
// back to now when both are zero.
func (d Document) EffectiveTime(now time.Time) time.Time {
	switch {
	case d.Published.IsZero() && d.Fetched.IsZero():
		return now
	case d.Published.IsZero():
		return d.Fetched
	case d.Fetched.IsZero():
		return d.Published
	case d.Fetched.Before(d.Published):
		return d.Fetched
	default:
		return d.Published
	}
}

// Age returns the document age relative to now, never negative.
func (d Document) Age(now time.Time) time.Duration {
	age := now.Sub(d.EffectiveTime(now))
	if age < 0 {
		return 0
	}
	return age
}

// Normalize applies the ingest-and-validate rules so downstream stages never
// need defensive checks: entity sets are uppercased and deduped, numeric
// fields are clamped to [0,100], and a missing priority defaults to LOW.
func (d *Document) Normalize() {
	d.Entities.Countries = normalizeSet(d.Entities.Countries)
	d.Entities.Organizations = normalizeSet(d.Entities.Organizations)
	d.Entities.Technologies = normalizeSet(d.Entities.Technologies)
	d.Entities.Weapons = normalizeSet(d.Entities.Weapons)

	d.Source.Credibility = Clamp(d.Source.Credibility)
	d.Annot.Relevance = Clamp(d.Annot.Relevance)
	d.Annot.Confidence = Clamp(d.Annot.Confidence)

	switch d.Annot.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		d.Annot.Priority = PriorityLow
	}
}

// Clamp bounds a score to [0,100]. NaN clamps to 0.
func Clamp(v float64) float64 {
	if v != v { // NaN
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

func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
