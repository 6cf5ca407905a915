package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/scoring"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(scoring.DefaultTables(), DefaultThresholds(),
		WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

// flagshipDoc is a fresh, well-sourced, entity-rich report that should
// survive every stage.
func flagshipDoc() model.Document {
	return model.Document{
		ID:    "flagship",
		Title: "Russia deploys S-500 air defense systems near Ukraine border",
		Content: "Russia has begun a large deployment of S-500 air defense systems near " +
			"the Ukraine border, officials said on Tuesday. According to analysts, the " +
			"mobilization involves 3 battalions, 12 radar stations and artillery support " +
			"moved by rail over 48 hours.\n\n" +
			"The defense ministry confirmed in a statement that the military exercise " +
			"includes missile units and satellite surveillance. Sources said the " +
			"escalation follows weeks of troop movement along the border, with NATO " +
			"officials monitoring readiness levels.\n\n" +
			"Analysts said the deployment of hypersonic missile systems marks a shift " +
			"in the balance of power, and the alliance announced additional " +
			"reinforcement and patrol flights in response.",
		URL:       "https://reuters.com/world/s500-border",
		Published: testNow.Add(-45 * time.Minute),
		Source:    model.Source{Domain: "reuters.com", Name: "Reuters", Credibility: 95},
		Entities: model.Entities{
			Countries:     []string{"RUSSIA", "UKRAINE"},
			Organizations: []string{"NATO"},
			Technologies:  []string{"SATELLITE"},
			Weapons:       []string{"S-500"},
		},
	}
}

func TestRunFlagshipSignal(t *testing.T) {
	p := newTestPipeline(t)

	out, err := p.Run(context.Background(), []model.Document{flagshipDoc()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Passed) != 1 {
		for _, r := range out.Rejected {
			t.Logf("rejected at %s: %s", r.Stage, r.Reason)
		}
		t.Fatalf("expected 1 signal, got %d", len(out.Passed))
	}

	sig := out.Passed[0]
	if len(sig.Verdicts) != 7 {
		t.Errorf("expected 7 stage verdicts, got %d", len(sig.Verdicts))
	}
	if sig.Reason != "" {
		t.Errorf("passed document carries reason %q", sig.Reason)
	}
	if sig.Grade == "" {
		t.Error("passed document has no grade")
	}

	b := sig.Breakdown
	if b.Priority != model.PriorityHigh && b.Priority != model.PriorityCritical {
		t.Errorf("priority = %s, want HIGH or CRITICAL (overall %f)", b.Priority, b.Overall)
	}
	if b.Temporal < 95 {
		t.Errorf("45-minute-old document scored temporal %f, want >= 95", b.Temporal)
	}
	if b.TensionPairs < 1 {
		t.Error("expected at least one tension pair")
	}

	if len(out.Report.Stages) != 7 {
		t.Fatalf("expected 7 stage reports, got %d", len(out.Report.Stages))
	}
	if out.Report.Stages[0].Name != StageScreening || out.Report.Stages[6].Name != StageValidation {
		t.Errorf("unexpected stage order: %s .. %s",
			out.Report.Stages[0].Name, out.Report.Stages[6].Name)
	}
	if out.Report.Distribution[sig.Grade] != 1 {
		t.Errorf("grade distribution missing %s: %v", sig.Grade, out.Report.Distribution)
	}
}

func TestRunRejectsShortContent(t *testing.T) {
	p := newTestPipeline(t)

	doc := flagshipDoc()
	doc.ID = "short"
	doc.Content = "Too short to evaluate."

	out, err := p.Run(context.Background(), []model.Document{doc})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(out.Rejected))
	}

	r := out.Rejected[0]
	if r.Stage != StageScreening {
		t.Errorf("rejected at %s, want %s", r.Stage, StageScreening)
	}
	if r.Reason != "Insufficient content length" {
		t.Errorf("reason = %q, want %q", r.Reason, "Insufficient content length")
	}
	// Screening rejections never reach later stages.
	if len(r.Verdicts) != 1 {
		t.Errorf("expected exactly 1 verdict, got %d", len(r.Verdicts))
	}
}

func TestRunRejectsAdvertising(t *testing.T) {
	p := newTestPipeline(t)

	doc := flagshipDoc()
	doc.ID = "ad"
	doc.Content = "Exclusive military gear for readers of this newsletter. Click here to " +
		"claim your limited time offer before the promotion ends this weekend."

	out, err := p.Run(context.Background(), []model.Document{doc})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(out.Rejected))
	}

	r := out.Rejected[0]
	if r.Stage != StageScreening {
		t.Errorf("rejected at %s, want %s", r.Stage, StageScreening)
	}
	if !strings.HasPrefix(r.Reason, "Advertisement content") {
		t.Errorf("reason = %q, want advertisement rejection", r.Reason)
	}
}

func TestRunDeduplicatesAcrossSources(t *testing.T) {
	p := newTestPipeline(t)

	original := flagshipDoc()
	dupe := flagshipDoc()
	dupe.ID = "copy"
	dupe.Published = testNow.Add(-35 * time.Minute)
	dupe.Source = model.Source{Domain: "thehill.com", Name: "The Hill"}

	out, err := p.Run(context.Background(), []model.Document{dupe, original})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.Passed) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(out.Passed))
	}
	if out.Passed[0].Doc.ID != "flagship" {
		t.Errorf("retained %s, want the higher-credibility flagship", out.Passed[0].Doc.ID)
	}

	if len(out.Rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(out.Rejected))
	}
	r := out.Rejected[0]
	if r.Stage != StageDuplicates {
		t.Errorf("rejected at %s, want %s", r.Stage, StageDuplicates)
	}
	if r.DuplicateOf != "flagship" {
		t.Errorf("DuplicateOf = %q, want flagship", r.DuplicateOf)
	}
	if !strings.Contains(r.Reason, "Duplicate of flagship") {
		t.Errorf("reason = %q", r.Reason)
	}

	if len(out.Report.Clusters) != 1 || out.Report.Clusters[0].PrimaryID != "flagship" {
		t.Errorf("cluster records = %+v", out.Report.Clusters)
	}
}

func TestRunIdempotent(t *testing.T) {
	p := newTestPipeline(t)

	batch := func() []model.Document {
		weak := flagshipDoc()
		weak.ID = "weak"
		weak.Title = "Regional summit discusses trade policy"
		weak.Content = "Ministers gathered for a short summit on regional trade policy and " +
			"pipeline access. No agreements were announced and talks continue next month."
		weak.URL = "https://example.com/summit"
		weak.Source = model.Source{Domain: "example.com"}
		weak.Entities = model.Entities{Countries: []string{"GERMANY"}}
		return []model.Document{flagshipDoc(), weak}
	}

	first, err := p.Run(context.Background(), batch())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := p.Run(context.Background(), batch())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if len(first.Passed) != len(second.Passed) || len(first.Rejected) != len(second.Rejected) {
		t.Fatalf("partition changed between runs: %d/%d vs %d/%d",
			len(first.Passed), len(first.Rejected), len(second.Passed), len(second.Rejected))
	}
	for i := range first.Passed {
		a, b := first.Passed[i], second.Passed[i]
		if a.Doc.ID != b.Doc.ID || a.Breakdown.Overall != b.Breakdown.Overall ||
			a.Breakdown.Priority != b.Breakdown.Priority || a.Grade != b.Grade {
			t.Errorf("signal %d diverged between runs: %+v vs %+v", i, a.Breakdown, b.Breakdown)
		}
	}
	for i := range first.Rejected {
		a, b := first.Rejected[i], second.Rejected[i]
		if a.Doc.ID != b.Doc.ID || a.Stage != b.Stage || a.Reason != b.Reason {
			t.Errorf("rejection %d diverged: %s/%s vs %s/%s", i, a.Stage, a.Reason, b.Stage, b.Reason)
		}
	}
}

func TestRunPartitionInvariant(t *testing.T) {
	p := newTestPipeline(t)

	short := flagshipDoc()
	short.ID = "short"
	short.Content = "tiny"

	noURL := flagshipDoc()
	noURL.ID = "nourl"
	noURL.URL = ""

	docs := []model.Document{flagshipDoc(), short, noURL}
	out, err := p.Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.Passed)+len(out.Rejected) != len(docs) {
		t.Fatalf("partition lost documents: %d + %d != %d",
			len(out.Passed), len(out.Rejected), len(docs))
	}
	for _, r := range out.Rejected {
		if r.Reason == "" || r.Stage == "" {
			t.Errorf("rejection of %s has no attributable reason", r.Doc.ID)
		}
		last := r.Verdicts[len(r.Verdicts)-1]
		if last.Reason != r.Reason {
			t.Errorf("last verdict reason %q does not match outcome reason %q", last.Reason, r.Reason)
		}
	}
	for _, s := range out.Passed {
		if s.Reason != "" || s.Stage != "" {
			t.Errorf("signal %s carries rejection fields", s.Doc.ID)
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	p := newTestPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []model.Document{flagshipDoc()})
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(scoring.Tables{}, DefaultThresholds()); err == nil {
		t.Error("empty tables should fail validation")
	}

	bad := DefaultThresholds()
	bad.DuplicateThreshold = 1.5
	if _, err := New(scoring.DefaultTables(), bad); err == nil {
		t.Error("out-of-range duplicate threshold should fail validation")
	}
}
