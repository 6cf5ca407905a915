package scoring

import (
	"math"
	"time"
)

// TemporalScorer converts document age into a decayed urgency factor.
// Fresh items score ~100; the score halves every HalfLife.
type TemporalScorer struct {
	// HalfLife is how long until the temporal score drops to 50.
	// Default: 24 hours.
	HalfLife time.Duration
}

// NewTemporalScorer returns a scorer with the default 24h half-life.
func NewTemporalScorer() *TemporalScorer {
	return &TemporalScorer{HalfLife: 24 * time.Hour}
}

// Score returns the temporal score for a document of the given age, 0-100.
// Negative ages (future-dated items) score as brand new.
func (s *TemporalScorer) Score(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	halfLife := s.HalfLife
	if halfLife <= 0 {
		halfLife = 24 * time.Hour
	}
	halfLives := float64(age) / float64(halfLife)
	return clamp(100 * math.Pow(0.5, halfLives))
}
