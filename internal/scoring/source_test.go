package scoring

import (
	"testing"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
)

func TestSourceTier(t *testing.T) {
	s := NewSourceScorer(DefaultTables().Credibility)

	tests := []struct {
		domain string
		want   int
	}{
		{"reuters.com", 1},
		{"live.reuters.com", 1}, // subdomains inherit the tier
		{"nytimes.com", 2},
		{"thehill.com", 3},
		{"rt.com", 4},
		{"example.com", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := s.Tier(tt.domain); got != tt.want {
			t.Errorf("Tier(%q) = %d, want %d", tt.domain, got, tt.want)
		}
	}
}

func TestSourceScore(t *testing.T) {
	s := NewSourceScorer(DefaultTables().Credibility)

	tests := []struct {
		name string
		src  model.Source
		want float64
	}{
		{"tier1 base", model.Source{Domain: "reuters.com"}, 90},
		{"tier2 base", model.Source{Domain: "nytimes.com"}, 75},
		{"unlisted base", model.Source{Domain: "example.com"}, 50},
		{"feed credibility wins", model.Source{Domain: "example.com", Credibility: 95}, 95},
		{"official domain bonus", model.Source{Domain: "state.gov"}, 60},
		{"academic domain bonus", model.Source{Domain: "mit.edu"}, 58},
		{"propaganda penalty", model.Source{Domain: "rt.com"}, 15}, // tier4 40 - 25
		{"commercial penalty", model.Source{Domain: "example.com", Name: "Sponsored Feed"}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.src); got != tt.want {
				t.Errorf("Score(%+v) = %f, want %f", tt.src, got, tt.want)
			}
		})
	}
}

func TestThreatAssess(t *testing.T) {
	a := NewThreatAssessor(DefaultTables().Threats)

	empty := a.Assess("no concerning vocabulary here")
	if empty.Score != 0 || empty.Level != ThreatLow {
		t.Errorf("benign text: score=%f level=%s, want 0 LOW", empty.Score, empty.Level)
	}

	// Three nuclear-category matches at weight 1.0: 3*10*1.0 = 30, MEDIUM.
	med := a.Assess("nuclear warhead enrichment program announced")
	if med.Score != 30 || med.Level != ThreatMedium {
		t.Errorf("nuclear text: score=%f level=%s, want 30 MEDIUM", med.Score, med.Level)
	}
	if med.Categories["nuclear"] != 3 {
		t.Errorf("expected 3 nuclear matches, got %d", med.Categories["nuclear"])
	}

	// Eight military matches at 0.8: 64, HIGH.
	high := a.Assess("invasion offensive airstrike mobilization troops artillery casualties frontline")
	if high.Score != 64 || high.Level != ThreatHigh {
		t.Errorf("military text: score=%f level=%s, want 64 HIGH", high.Score, high.Level)
	}

	// Adding two nuclear terms pushes it to 84, CRITICAL.
	crit := a.Assess("invasion offensive airstrike mobilization troops artillery casualties frontline nuclear warhead")
	if crit.Score != 84 || crit.Level != ThreatCritical {
		t.Errorf("escalated text: score=%f level=%s, want 84 CRITICAL", crit.Score, crit.Level)
	}
}

func TestTemporalScore(t *testing.T) {
	s := NewTemporalScorer()

	tests := []struct {
		name string
		age  time.Duration
		want float64
		tol  float64
	}{
		{"fresh", 0, 100, 0},
		{"45 minutes", 45 * time.Minute, 97.86, 0.05}, // breaking news stays above 95
		{"one half-life", 24 * time.Hour, 50, 1e-9},
		{"two half-lives", 48 * time.Hour, 25, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.age)
			if diff := got - tt.want; diff < -tt.tol || diff > tt.tol {
				t.Errorf("Score(%v) = %f, want %f ± %f", tt.age, got, tt.want, tt.tol)
			}
		})
	}

	if got := s.Score(-time.Hour); got != 100 {
		t.Errorf("future-dated item should score as fresh, got %f", got)
	}
}
