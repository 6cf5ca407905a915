package scoring

import (
	"math"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
)

// Primary factor weights. This exact partition is a contract: briefing
// consumers attribute score contributions per factor, so changing a weight
// changes the meaning of every stored breakdown.
const (
	weightKeyword  = 0.30
	weightEntity   = 0.25
	weightSource   = 0.20
	weightTemporal = 0.10
	weightGeo      = 0.08
	weightThreat   = 0.07
)

// Secondary factor weights.
const (
	weightDepth       = 0.15
	weightLinguistic  = 0.20
	weightCrossRef    = 0.25
	weightOperational = 0.25
	weightStrategic   = 0.15
)

// Priority thresholds on the combined score.
const (
	priorityCriticalMin = 85.0
	priorityHighMin     = 70.0
	priorityMediumMin   = 50.0
)

// Combiner computes the multi-factor intelligence score for a document.
type Combiner struct {
	keywords *KeywordScorer
	entities *EntityScorer
	temporal *TemporalScorer
	source   *SourceScorer
	threat   *ThreatAssessor
	geo      *GeoScorer
	context  ContextAdjuster
}

// NewCombiner wires the sub-scorers from one table set. The context adjuster
// defaults to NeutralContext; use WithContext to install a real one.
func NewCombiner(t Tables) *Combiner {
	entities := NewEntityScorer(t)
	return &Combiner{
		keywords: NewKeywordScorer(t.Keywords),
		entities: entities,
		temporal: NewTemporalScorer(),
		source:   NewSourceScorer(t.Credibility),
		threat:   NewThreatAssessor(t.Threats),
		geo:      NewGeoScorer(entities),
		context:  NeutralContext{},
	}
}

// WithContext replaces the context adjuster and returns the combiner.
func (c *Combiner) WithContext(adjuster ContextAdjuster) *Combiner {
	c.context = adjuster
	return c
}

// SourceScorer exposes the credibility scorer for reuse by verification.
func (c *Combiner) SourceScorer() *SourceScorer { return c.source }

// Score computes the full breakdown for one document. siblings is a small
// window of recent documents used for cross-reference corroboration; now
// anchors temporal scoring so that rescoring the same batch is idempotent.
func (c *Combiner) Score(doc model.Document, siblings []model.Document, now time.Time) model.ScoreBreakdown {
	text := doc.Title + " " + doc.Content

	threat := c.threat.Assess(text)
	pairs := c.entities.TensionPairs(doc.Entities.Countries)

	b := model.ScoreBreakdown{
		Keyword:           c.keywords.Score(text),
		Entity:            c.entities.Score(doc.Entities),
		SourceCredibility: c.source.Score(doc.Source),
		Temporal:          c.temporal.Score(doc.Age(now)),
		Geopolitical:      c.geo.Score(doc.Entities.Countries),
		Threat:            threat.Score,

		ContentDepth:   ContentDepth(doc.Content),
		Linguistic:     Linguistic(text),
		CrossReference: CrossReference(doc, siblings),
		Operational:    Operational(text),
		Strategic:      c.entities.Strategic(text, doc.Entities.Countries),

		ThreatLevel:  threat.Level,
		TensionPairs: len(pairs),
	}

	b.Primary = b.Keyword*weightKeyword +
		b.Entity*weightEntity +
		b.SourceCredibility*weightSource +
		b.Temporal*weightTemporal +
		b.Geopolitical*weightGeo +
		b.Threat*weightThreat

	b.Secondary = b.ContentDepth*weightDepth +
		b.Linguistic*weightLinguistic +
		b.CrossReference*weightCrossRef +
		b.Operational*weightOperational +
		b.Strategic*weightStrategic

	trend, novelty, confirmation := c.context.Adjust(doc, siblings)
	b.ContextFactor = trend * novelty * confirmation

	b.Overall = model.Clamp((b.Primary*0.7 + b.Secondary*0.3) * b.ContextFactor)
	b.Confidence = confidence(b)
	b.Priority, b.Escalated = classify(b)

	return b
}

// confidence rewards agreement across the primary factors: low spread means
// the factors corroborate each other. 0.6 * consistency + 0.4 * source
// credibility, floored at 30.
func confidence(b model.ScoreBreakdown) float64 {
	primaries := []float64{
		b.Keyword, b.Entity, b.SourceCredibility, b.Temporal, b.Geopolitical, b.Threat,
	}

	mean := 0.0
	for _, v := range primaries {
		mean += v
	}
	mean /= float64(len(primaries))

	variance := 0.0
	for _, v := range primaries {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(primaries)))

	consistency := 100 - stddev*2
	if consistency < 0 {
		consistency = 0
	}

	conf := 0.6*consistency + 0.4*b.SourceCredibility
	if conf < 30 {
		conf = 30
	}
	return model.Clamp(conf)
}

// classify maps the overall score to a priority band, then applies the one
// documented escalation rule: a CRITICAL threat assessment or two or more
// tension pairs raises priority exactly one band.
func classify(b model.ScoreBreakdown) (model.Priority, bool) {
	var p model.Priority
	switch {
	case b.Overall >= priorityCriticalMin:
		p = model.PriorityCritical
	case b.Overall >= priorityHighMin:
		p = model.PriorityHigh
	case b.Overall >= priorityMediumMin:
		p = model.PriorityMedium
	default:
		p = model.PriorityLow
	}

	if b.ThreatLevel == ThreatCritical || b.TensionPairs >= 2 {
		escalated := p.Escalate()
		if escalated != p {
			return escalated, true
		}
	}
	return p, false
}
