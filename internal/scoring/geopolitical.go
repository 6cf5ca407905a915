package scoring

// GeoScorer looks up known tension and importance pairs among the countries
// detected in a document.
type GeoScorer struct {
	entities *EntityScorer
}

// NewGeoScorer builds a scorer that shares the entity scorer's tension and
// importance tables.
func NewGeoScorer(entities *EntityScorer) *GeoScorer {
	return &GeoScorer{entities: entities}
}

// Score returns the geopolitical context score, 0-100.
//
// With at least one tension pair present, the score is the average pair
// weight plus +10 per additional pair. Without pairs, recognized countries
// still contribute a modest context score so multi-country items outrank
// country-free ones.
func (g *GeoScorer) Score(countries []string) float64 {
	pairs := g.entities.TensionPairs(countries)
	if len(pairs) > 0 {
		total := 0.0
		for _, p := range pairs {
			total += p.Weight
		}
		avg := total / float64(len(pairs))
		return clamp(avg + float64(len(pairs)-1)*10)
	}

	if len(countries) == 0 {
		return 0
	}
	return clamp(g.entities.countryScore(countries) * 0.5)
}
