package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
)

var dedupNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func syndicated(id, domain string, cred float64, offset time.Duration) model.Document {
	return model.Document{
		ID:    id,
		Title: "Missile systems moved toward the eastern border overnight",
		Content: "Several missile systems were moved toward the eastern border overnight, " +
			"according to officials familiar with the deployment. The move follows weeks " +
			"of rising tension in the region and additional radar coverage.",
		URL:       "https://wire.example.com/syndicated/12345",
		Published: dedupNow.Add(offset),
		Source:    model.Source{Domain: domain, Credibility: cred},
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	d := NewDetector(0.85)
	a := syndicated("a", "reuters.com", 95, -10*time.Minute)
	b := syndicated("b", "rt.com", 40, -20*time.Minute)
	b.Title = "Missile systems reportedly moved near border"
	b.Content = "Missile systems were reportedly moved near the border this week."

	if d.Similarity(a, b, dedupNow) != d.Similarity(b, a, dedupNow) {
		t.Error("similarity is not symmetric")
	}
}

func TestSimilarityComponents(t *testing.T) {
	d := NewDetector(0.85)
	a := syndicated("a", "reuters.com", 95, -10*time.Minute)
	b := syndicated("b", "rt.com", 40, -20*time.Minute)

	// Identical title, content, and URL published minutes apart.
	if sim := d.Similarity(a, b, dedupNow); sim < 0.95 {
		t.Errorf("syndicated copies should score near 1.0, got %f", sim)
	}

	// Different URL drops the exact-URL component entirely.
	b.URL = "https://other.example.com/99"
	if sim := d.Similarity(a, b, dedupNow); sim > 0.8 {
		t.Errorf("differing URLs should cap similarity at 0.8, got %f", sim)
	}

	// Unrelated documents score near zero.
	c := model.Document{
		ID:        "c",
		Title:     "Quarterly harvest beats forecasts",
		Content:   "Farmers reported a strong season with yields above the ten year average.",
		URL:       "https://farm.example.com/1",
		Published: dedupNow.Add(-time.Hour),
	}
	if sim := d.Similarity(a, c, dedupNow); sim > 0.3 {
		t.Errorf("unrelated documents should score low, got %f", sim)
	}
}

func TestDetectRetainsMostCredible(t *testing.T) {
	d := NewDetector(0.85)

	// Tier-4 copy arrives first; the tier-1 original must still win.
	docs := []model.Document{
		syndicated("weak", "rt.com", 40, -5*time.Minute),
		syndicated("strong", "reuters.com", 95, -15*time.Minute),
	}

	result := d.detect(docs, dedupNow)

	if !reflect.DeepEqual(result.retained, []int{1}) {
		t.Fatalf("retained = %v, want [1]", result.retained)
	}
	if result.duplicateOf[0] != 1 {
		t.Errorf("duplicateOf[0] = %d, want 1", result.duplicateOf[0])
	}
	if len(result.clusters) != 1 {
		t.Fatalf("expected 1 cluster record, got %d", len(result.clusters))
	}

	record := result.clusters[0]
	if record.PrimaryID != "strong" {
		t.Errorf("primary = %s, want strong", record.PrimaryID)
	}
	if !reflect.DeepEqual(record.DuplicateIDs, []string{"weak"}) {
		t.Errorf("duplicates = %v, want [weak]", record.DuplicateIDs)
	}
	if sim := record.Similarity["weak"]; sim < d.threshold {
		t.Errorf("recorded similarity %f below threshold", sim)
	}
}

func TestDetectEarliestIndexBreaksTies(t *testing.T) {
	d := NewDetector(0.85)
	docs := []model.Document{
		syndicated("first", "reuters.com", 95, -5*time.Minute),
		syndicated("second", "reuters.com", 95, -5*time.Minute),
	}

	result := d.detect(docs, dedupNow)
	if !reflect.DeepEqual(result.retained, []int{0}) {
		t.Errorf("retained = %v, want [0] (earliest index wins ties)", result.retained)
	}
}

func TestDetectLeavesDistinctDocsAlone(t *testing.T) {
	d := NewDetector(0.85)
	docs := []model.Document{
		syndicated("a", "reuters.com", 95, -5*time.Minute),
		{
			ID:        "b",
			Title:     "Parliament passes budget after long debate",
			Content:   "Lawmakers approved the annual budget late on Thursday after months of negotiation.",
			URL:       "https://news.example.com/budget",
			Published: dedupNow.Add(-2 * time.Hour),
		},
	}

	result := d.detect(docs, dedupNow)
	if !reflect.DeepEqual(result.retained, []int{0, 1}) {
		t.Errorf("retained = %v, want [0 1]", result.retained)
	}
	if len(result.duplicateOf) != 0 || len(result.clusters) != 0 {
		t.Errorf("unexpected duplicates: %+v", result)
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector(0.85)
	docs := []model.Document{
		syndicated("a", "rt.com", 40, -5*time.Minute),
		syndicated("b", "reuters.com", 95, -15*time.Minute),
		syndicated("c", "thehill.com", 60, -25*time.Minute),
	}

	first := d.detect(docs, dedupNow)
	second := d.detect(docs, dedupNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("detection is not deterministic:\n%+v\n%+v", first, second)
	}
}
