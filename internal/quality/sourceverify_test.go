package quality

import (
	"strings"
	"testing"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/scoring"
)

func newTestVerifier() *Verifier {
	return NewVerifier(scoring.DefaultTables().Credibility, 50)
}

func TestVerifyAcceptsTier1(t *testing.T) {
	v := newTestVerifier()
	verdict := v.Verify(model.Document{
		Source: model.Source{Domain: "reuters.com", Name: "Reuters"},
	})

	if !verdict.Accepted {
		t.Fatalf("tier-1 source rejected: %s", verdict.Reason)
	}
	if verdict.Tier != 1 {
		t.Errorf("tier = %d, want 1", verdict.Tier)
	}
	if verdict.Credibility != 90 {
		t.Errorf("credibility = %f, want 90", verdict.Credibility)
	}
	if len(verdict.Flags) != 0 {
		t.Errorf("unexpected flags: %+v", verdict.Flags)
	}
}

func TestVerifyRejectsLowCredibility(t *testing.T) {
	v := newTestVerifier()
	verdict := v.Verify(model.Document{
		Source: model.Source{Domain: "zerohedge.com"},
	})

	if verdict.Accepted {
		t.Fatal("tier-4 source below the floor was accepted")
	}
	if verdict.Reason == "" {
		t.Error("rejection must carry a reason")
	}
	if !strings.Contains(verdict.Reason, "below minimum") {
		t.Errorf("unexpected reason: %s", verdict.Reason)
	}
}

func TestVerifyPropagandaFlag(t *testing.T) {
	v := newTestVerifier()
	verdict := v.Verify(model.Document{
		Source: model.Source{Domain: "rt.com", Name: "RT"},
	})

	if verdict.Accepted {
		t.Fatal("propaganda-flagged source was accepted")
	}
	found := false
	for _, f := range verdict.Flags {
		if f.Severity == FlagCritical {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a CRITICAL flag, got %+v", verdict.Flags)
	}
	if !strings.Contains(verdict.Reason, "propaganda") {
		t.Errorf("unexpected reason: %s", verdict.Reason)
	}
}

func TestVerifyFabricationInBody(t *testing.T) {
	v := newTestVerifier()
	verdict := v.Verify(model.Document{
		Content: "The shocking truth they don't want you to know about the deal.",
		Source:  model.Source{Domain: "reuters.com"},
	})

	// Fabrication language in the body overrides even a tier-1 domain.
	if verdict.Accepted {
		t.Fatal("fabrication-flagged document was accepted")
	}
	found := false
	for _, f := range verdict.Flags {
		if f.Severity == FlagHigh {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a HIGH flag, got %+v", verdict.Flags)
	}
}

func TestVerifyCommercialFlagIsAdvisory(t *testing.T) {
	v := newTestVerifier()
	verdict := v.Verify(model.Document{
		Source: model.Source{Domain: "reuters.com", Name: "Reuters Partner Content"},
	})

	// MEDIUM flags penalize credibility but do not reject on their own.
	if !verdict.Accepted {
		t.Fatalf("commercial flag alone should not reject: %s", verdict.Reason)
	}
	if verdict.Credibility != 80 {
		t.Errorf("credibility = %f, want 80 after the -10 penalty", verdict.Credibility)
	}
	if len(verdict.Flags) != 1 || verdict.Flags[0].Severity != FlagMedium {
		t.Errorf("expected one MEDIUM flag, got %+v", verdict.Flags)
	}
}
