package scoring

import "github.com/hellothere012/ghostbrief/internal/model"

// ContextAdjuster supplies the trend/novelty/confirmation multipliers applied
// to the combined score. The pipeline ships with a neutral default; real
// trend analysis plugs in here without touching the combiner.
type ContextAdjuster interface {
	// Adjust returns the three multipliers for a document given its sibling
	// window. Each defaults to 1.0 when unknown.
	Adjust(doc model.Document, siblings []model.Document) (trend, novelty, confirmation float64)
}

// NeutralContext is the default ContextAdjuster: every multiplier is 1.0,
// leaving the combined score untouched.
type NeutralContext struct{}

// Adjust implements ContextAdjuster.
func (NeutralContext) Adjust(model.Document, []model.Document) (float64, float64, float64) {
	return 1.0, 1.0, 1.0
}
