// Package pipeline sequences the quality filter: seven ordered stages that
// screen, analyze, verify, deduplicate, score, assess, and validate a batch
// of annotated documents. Each stage partitions its input into passed and
// rejected; the survivors of the last stage are intelligence signals.
//
// The pipeline is a pure in-memory transform. It owns no mutable state
// between batches, so concurrent Run calls on disjoint batches are safe.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hellothere012/ghostbrief/internal/logging"
	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/quality"
	"github.com/hellothere012/ghostbrief/internal/scoring"
)

// Stage names, in execution order.
const (
	StageScreening    = "initial_screening"
	StageContent      = "content_analysis"
	StageSource       = "source_verification"
	StageDuplicates   = "duplicate_detection"
	StageQuality      = "quality_scoring"
	StageIntelligence = "intelligence_assessment"
	StageValidation   = "final_validation"
)

// Signal grades assigned at final validation.
const (
	GradePremium  = "PREMIUM"
	GradeHigh     = "HIGH"
	GradeStandard = "STANDARD"
	GradeBasic    = "BASIC"
)

// Thresholds are the stage gate values. Zero-value fields are invalid; use
// DefaultThresholds and override what you need.
type Thresholds struct {
	MinContentChars      int           `yaml:"min_content_chars"`
	MaxAge               time.Duration `yaml:"max_age"`
	MinDraftRelevance    float64       `yaml:"min_draft_relevance"`
	ContentGate          float64       `yaml:"content_gate"`
	MinSourceCredibility float64       `yaml:"min_source_credibility"`
	DuplicateThreshold   float64       `yaml:"duplicate_threshold"`
	QualityGate          float64       `yaml:"quality_gate"`
	IntelligenceGate     float64       `yaml:"intelligence_gate"`
	FinalGate            float64       `yaml:"final_gate"`
}

// DefaultThresholds returns the canonical gate values. The content gate is
// 40, matching the seven-stage orchestrator (see DESIGN.md for the 40-vs-60
// decision).
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinContentChars:      100,
		MaxAge:               168 * time.Hour,
		MinDraftRelevance:    40,
		ContentGate:          40,
		MinSourceCredibility: 50,
		DuplicateThreshold:   0.85,
		QualityGate:          65,
		IntelligenceGate:     70,
		FinalGate:            70,
	}
}

// validate catches operator mistakes before any batch is touched.
func (t Thresholds) validate() error {
	if t.MinContentChars <= 0 {
		return fmt.Errorf("min_content_chars must be positive, got %d", t.MinContentChars)
	}
	if t.MaxAge <= 0 {
		return fmt.Errorf("max_age must be positive, got %v", t.MaxAge)
	}
	if t.DuplicateThreshold <= 0 || t.DuplicateThreshold > 1 {
		return fmt.Errorf("duplicate_threshold %v out of (0,1]", t.DuplicateThreshold)
	}
	for name, gate := range map[string]float64{
		"min_draft_relevance":    t.MinDraftRelevance,
		"content_gate":           t.ContentGate,
		"min_source_credibility": t.MinSourceCredibility,
		"quality_gate":           t.QualityGate,
		"intelligence_gate":      t.IntelligenceGate,
		"final_gate":             t.FinalGate,
	} {
		if gate < 0 || gate > 100 {
			return fmt.Errorf("%s %v out of [0,100]", name, gate)
		}
	}
	return nil
}

// Outcome is the pipeline's final record for one document.
type Outcome struct {
	Doc         model.Document
	Breakdown   model.ScoreBreakdown
	Verdicts    []model.QualityVerdict
	Grade       string // set for passed documents at final validation
	Rejected    bool
	Stage       string // rejecting stage
	Reason      string // exactly one attributable reason
	DuplicateOf string // retained primary ID, duplicate rejections only
}

// Output is the complete result of one batch run: a full partition plus the
// audit report. Passed is ordered by overall score descending.
type Output struct {
	Passed   []Outcome
	Rejected []Outcome
	Report   model.PipelineReport
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock fixes the pipeline's notion of now. Every age and temporal
// computation in a batch uses this single instant, which is what makes
// re-running a batch reproducible.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) { p.now = clock }
}

// WithContextAdjuster installs a scoring context adjuster.
func WithContextAdjuster(adjuster scoring.ContextAdjuster) Option {
	return func(p *Pipeline) { p.adjuster = adjuster }
}

// Pipeline is the seven-stage quality filter. Construct once, reuse across
// batches.
type Pipeline struct {
	thresholds Thresholds
	combiner   *scoring.Combiner
	verifier   *quality.Verifier
	detector   *Detector
	adjuster   scoring.ContextAdjuster
	now        func() time.Time
}

// New builds a pipeline from scoring tables and thresholds. Malformed
// configuration fails here, before any document is processed.
func New(tables scoring.Tables, thresholds Thresholds, opts ...Option) (*Pipeline, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring tables: %w", err)
	}
	if err := thresholds.validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}

	p := &Pipeline{
		thresholds: thresholds,
		verifier:   quality.NewVerifier(tables.Credibility, thresholds.MinSourceCredibility),
		detector:   NewDetector(thresholds.DuplicateThreshold),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.combiner = scoring.NewCombiner(tables)
	if p.adjuster != nil {
		p.combiner.WithContext(p.adjuster)
	}
	return p, nil
}

// docState tracks one document through the stages.
type docState struct {
	doc          model.Document
	breakdown    model.ScoreBreakdown
	scored       bool
	contentScore float64
	sourceScore  float64
	qualityScore float64
	intelValue   float64
	finalScore   float64
	verdicts     []model.QualityVerdict
	rejectStage  string
	rejectReason string
	duplicateOf  string
	grade        string
}

func (s *docState) reject(stage, reason string) {
	s.rejectStage = stage
	s.rejectReason = reason
}

// Run processes one batch. The caller keeps ownership of docs; the pipeline
// works on normalized copies and returns an updated view. A cancelled
// context aborts between stages and the report in progress is discarded.
func (p *Pipeline) Run(ctx context.Context, docs []model.Document) (Output, error) {
	now := p.now()
	log := logging.WithPrefix("pipeline")

	report := model.PipelineReport{
		ID:           uuid.NewString(),
		Started:      now,
		Distribution: make(map[string]int),
	}

	states := make([]*docState, len(docs))
	for i, doc := range docs {
		doc.Normalize()
		states[i] = &docState{doc: doc}
	}

	working := make([]int, len(states))
	for i := range working {
		working[i] = i
	}

	stages := []struct {
		name string
		run  func(states []*docState, working []int, now time.Time) []int
	}{
		{StageScreening, p.screen},
		{StageContent, p.analyzeContent},
		{StageSource, p.verifySources},
		{StageDuplicates, func(s []*docState, w []int, n time.Time) []int {
			return p.deduplicate(s, w, n, &report)
		}},
		{StageQuality, p.scoreQuality},
		{StageIntelligence, p.assessIntelligence},
		{StageValidation, p.validateFinal},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return Output{}, fmt.Errorf("batch abandoned before %s: %w", stage.name, err)
		}

		start := time.Now()
		in := len(working)
		working = stage.run(states, working, now)

		report.Stages = append(report.Stages, model.StageReport{
			Name:     stage.name,
			Input:    in,
			Passed:   len(working),
			Rejected: in - len(working),
			Took:     time.Since(start),
		})
		if log != nil {
			log.Debug("stage complete", "stage", stage.name, "in", in, "passed", len(working))
		}
	}

	assertPartition(states, working)

	var out Output
	for _, st := range states {
		o := Outcome{
			Doc:         st.doc,
			Breakdown:   st.breakdown,
			Verdicts:    st.verdicts,
			Grade:       st.grade,
			DuplicateOf: st.duplicateOf,
		}
		if st.rejectStage != "" {
			o.Rejected = true
			o.Stage = st.rejectStage
			o.Reason = st.rejectReason
			out.Rejected = append(out.Rejected, o)
		} else {
			out.Passed = append(out.Passed, o)
			report.Distribution[st.grade]++
		}
	}

	// Signals surface highest-value first; priority breaks score ties.
	sort.SliceStable(out.Passed, func(i, j int) bool {
		a, b := out.Passed[i].Breakdown, out.Passed[j].Breakdown
		if a.Overall != b.Overall {
			return a.Overall > b.Overall
		}
		return a.Priority.Rank() > b.Priority.Rank()
	})

	report.Finished = time.Now()
	out.Report = report

	if log != nil {
		log.Info("batch complete",
			"report", report.ID,
			"input", len(docs),
			"signals", len(out.Passed),
			"rejected", len(out.Rejected))
	}
	return out, nil
}

// assertPartition panics when a document ends up both passed and rejected or
// neither. That state is a programming bug, never data-dependent, and must
// not be silently corrected.
func assertPartition(states []*docState, working []int) {
	passing := make(map[int]bool, len(working))
	for _, i := range working {
		if passing[i] {
			panic(fmt.Sprintf("pipeline invariant violated: index %d passed twice", i))
		}
		passing[i] = true
	}
	for i, st := range states {
		rejected := st.rejectStage != ""
		if rejected == passing[i] {
			panic(fmt.Sprintf("pipeline invariant violated: doc %s passed=%v rejected=%v",
				st.doc.ID, passing[i], rejected))
		}
		if rejected && st.rejectReason == "" {
			panic(fmt.Sprintf("pipeline invariant violated: doc %s rejected without reason", st.doc.ID))
		}
	}
}
