package scoring

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
)

var combinerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func combinerDocs() []model.Document {
	return []model.Document{
		{
			ID:    "hot",
			Title: "Russia deploys missile systems near Ukraine border",
			Content: "Russia has begun a large deployment of air defense and missile " +
				"systems near the Ukraine border, officials said. According to analysts " +
				"the mobilization involves several battalions and artillery units.",
			URL:       "https://reuters.com/a",
			Published: combinerNow.Add(-45 * time.Minute),
			Source:    model.Source{Domain: "reuters.com", Credibility: 95},
			Entities: model.Entities{
				Countries: []string{"RUSSIA", "UKRAINE"},
				Weapons:   []string{"S-500"},
			},
		},
		{
			ID:        "mild",
			Title:     "Trade ministers meet for energy summit",
			Content:   "Ministers gathered for a two-day summit on energy trade and pipeline policy.",
			URL:       "https://example.com/b",
			Published: combinerNow.Add(-30 * time.Hour),
			Source:    model.Source{Domain: "example.com"},
			Entities:  model.Entities{Countries: []string{"GERMANY", "FRANCE"}},
		},
		{
			ID:        "flat",
			Title:     "Local festival draws record crowd",
			Content:   "The annual festival saw its largest attendance in a decade.",
			URL:       "https://example.com/c",
			Published: combinerNow.Add(-100 * time.Hour),
			Source:    model.Source{Domain: "example.com"},
		},
	}
}

func TestCombinerBreakdown(t *testing.T) {
	c := NewCombiner(DefaultTables())
	docs := combinerDocs()

	b := c.Score(docs[0], docs, combinerNow)

	if b.ContextFactor != 1 {
		t.Errorf("neutral context factor should be 1, got %f", b.ContextFactor)
	}
	if b.Overall <= 0 || b.Overall > 100 {
		t.Errorf("overall %f out of (0,100]", b.Overall)
	}
	if b.Confidence < 30 || b.Confidence > 100 {
		t.Errorf("confidence %f out of [30,100]", b.Confidence)
	}
	if b.Temporal < 95 {
		t.Errorf("45-minute-old document should score temporal >= 95, got %f", b.Temporal)
	}
	if b.TensionPairs != 1 {
		t.Errorf("expected 1 tension pair, got %d", b.TensionPairs)
	}

	// The composites must follow the documented weight partition exactly.
	primary := b.Keyword*0.30 + b.Entity*0.25 + b.SourceCredibility*0.20 +
		b.Temporal*0.10 + b.Geopolitical*0.08 + b.Threat*0.07
	if math.Abs(b.Primary-primary) > 1e-9 {
		t.Errorf("primary composite %f does not match factor weights (%f)", b.Primary, primary)
	}
	secondary := b.ContentDepth*0.15 + b.Linguistic*0.20 + b.CrossReference*0.25 +
		b.Operational*0.25 + b.Strategic*0.15
	if math.Abs(b.Secondary-secondary) > 1e-9 {
		t.Errorf("secondary composite %f does not match factor weights (%f)", b.Secondary, secondary)
	}
	if got := model.Clamp(b.Primary*0.7 + b.Secondary*0.3); math.Abs(b.Overall-got) > 1e-9 {
		t.Errorf("overall %f does not match 70/30 blend (%f)", b.Overall, got)
	}
}

func TestCombinerRanking(t *testing.T) {
	c := NewCombiner(DefaultTables())
	docs := combinerDocs()

	hot := c.Score(docs[0], docs, combinerNow)
	mild := c.Score(docs[1], docs, combinerNow)
	flat := c.Score(docs[2], docs, combinerNow)

	if hot.Overall <= mild.Overall || mild.Overall <= flat.Overall {
		t.Errorf("expected strict ordering hot > mild > flat, got %f / %f / %f",
			hot.Overall, mild.Overall, flat.Overall)
	}
	if flat.Priority != model.PriorityLow {
		t.Errorf("country-free stale document should be LOW, got %s", flat.Priority)
	}
}

// band is the raw threshold mapping before the escalation rule.
func band(overall float64) model.Priority {
	switch {
	case overall >= 85:
		return model.PriorityCritical
	case overall >= 70:
		return model.PriorityHigh
	case overall >= 50:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func TestCombinerPriorityContract(t *testing.T) {
	c := NewCombiner(DefaultTables())
	docs := combinerDocs()

	for _, doc := range docs {
		b := c.Score(doc, docs, combinerNow)

		expected := band(b.Overall)
		if b.ThreatLevel == ThreatCritical || b.TensionPairs >= 2 {
			if esc := expected.Escalate(); esc != expected {
				expected = esc
				if !b.Escalated {
					t.Errorf("doc %s: escalation condition met but not flagged", doc.ID)
				}
			}
		} else if b.Escalated {
			t.Errorf("doc %s: escalated without a qualifying condition", doc.ID)
		}
		if b.Priority != expected {
			t.Errorf("doc %s: priority %s, want %s (overall %f)", doc.ID, b.Priority, expected, b.Overall)
		}
	}
}

func TestCombinerEscalation(t *testing.T) {
	c := NewCombiner(DefaultTables())

	// Two tension pairs (RUSSIA-UKRAINE, RUSSIA-BELARUS) with otherwise
	// unremarkable text: priority must rise exactly one band.
	doc := model.Document{
		ID:        "pairs",
		Title:     "Observers note continued alignment in the region",
		Content:   "Analysts described the situation as stable but worth monitoring closely.",
		URL:       "https://example.com/d",
		Published: combinerNow.Add(-2 * time.Hour),
		Source:    model.Source{Domain: "example.com"},
		Entities:  model.Entities{Countries: []string{"RUSSIA", "UKRAINE", "BELARUS"}},
	}

	b := c.Score(doc, nil, combinerNow)
	if b.TensionPairs != 2 {
		t.Fatalf("expected 2 tension pairs, got %d", b.TensionPairs)
	}
	if !b.Escalated {
		t.Error("two tension pairs should escalate priority")
	}
	if b.Priority != band(b.Overall).Escalate() {
		t.Errorf("priority %s, want one band above %s", b.Priority, band(b.Overall))
	}
}

func TestCombinerDeterminism(t *testing.T) {
	c := NewCombiner(DefaultTables())
	docs := combinerDocs()

	first := c.Score(docs[0], docs, combinerNow)
	second := c.Score(docs[0], docs, combinerNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same document and clock produced different breakdowns:\n%+v\n%+v", first, second)
	}
}
