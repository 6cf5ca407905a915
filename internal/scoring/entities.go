package scoring

import (
	"github.com/hellothere012/ghostbrief/internal/model"
)

// Base scores for country significance classes, applied over a baseline of
// 10 for any recognized country mention.
const (
	majorPowerBase    = 30.0
	conflictZoneBase  = 25.0
	regionalPowerBase = 20.0
	countryBaseline   = 10.0

	significantBase = 25.0
	ordinaryBase    = 10.0

	tensionBonus = 15.0
)

// EntityScorer scores extracted entities by strategic importance.
type EntityScorer struct {
	majorPowers    map[string]bool
	conflictZones  map[string]bool
	regionalPowers map[string]bool
	orgs           map[string]bool
	tech           map[string]bool
	arms           map[string]bool
	tensions       []TensionPair
}

// NewEntityScorer builds a scorer over the given tables.
func NewEntityScorer(t Tables) *EntityScorer {
	return &EntityScorer{
		majorPowers:    toSet(t.MajorPowers),
		conflictZones:  toSet(t.ConflictZones),
		regionalPowers: toSet(t.RegionalPowers),
		orgs:           toSet(t.SignificantOrgs),
		tech:           toSet(t.StrategicTech),
		arms:           toSet(t.StrategicArms),
		tensions:       t.Tensions,
	}
}

// Score returns the entity significance score, 0-100. Countries weigh 0.4,
// organizations 0.3, technologies 0.2, weapons 0.1 within the composite;
// each detected tension pair adds a flat +15 on top.
func (s *EntityScorer) Score(e model.Entities) float64 {
	countries := s.countryScore(e.Countries)
	orgs := setScore(e.Organizations, s.orgs)
	tech := setScore(e.Technologies, s.tech)
	arms := setScore(e.Weapons, s.arms)

	score := countries*0.4 + orgs*0.3 + tech*0.2 + arms*0.1
	score += float64(len(s.TensionPairs(e.Countries))) * tensionBonus

	return clamp(score)
}

// TensionPairs returns the known tension pairs present among the given
// countries, in table order for determinism.
func (s *EntityScorer) TensionPairs(countries []string) []TensionPair {
	present := toSet(countries)
	var pairs []TensionPair
	for _, p := range s.tensions {
		if present[p.A] && present[p.B] {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

func (s *EntityScorer) countryScore(countries []string) float64 {
	if len(countries) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range countries {
		total += countryBaseline
		switch {
		case s.majorPowers[c]:
			total += majorPowerBase
		case s.conflictZones[c]:
			total += conflictZoneBase
		case s.regionalPowers[c]:
			total += regionalPowerBase
		}
	}
	return clamp(total)
}

// setScore sums per-entity base scores: significant entries score 25,
// anything else 10, capped at 100.
func setScore(entities []string, significant map[string]bool) float64 {
	if len(entities) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range entities {
		if significant[e] {
			total += significantBase
		} else {
			total += ordinaryBase
		}
	}
	return clamp(total)
}

func toSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, v := range in {
		set[v] = true
	}
	return set
}
