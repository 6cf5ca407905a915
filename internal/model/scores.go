package model

import "time"

// ScoreBreakdown records every factor that contributed to a document's
// overall intelligence score. Downstream consumers rely on the factor
// attribution for explainability, so the fields mirror the scoring contract
// exactly rather than being an implementation convenience.
type ScoreBreakdown struct {
	// Primary factors, each 0-100.
	Keyword           float64 `json:"keyword"`
	Entity            float64 `json:"entity"`
	SourceCredibility float64 `json:"source_credibility"`
	Temporal          float64 `json:"temporal"`
	Geopolitical      float64 `json:"geopolitical"`
	Threat            float64 `json:"threat"`

	// Secondary factors, each 0-100.
	ContentDepth   float64 `json:"content_depth"`
	Linguistic     float64 `json:"linguistic"`
	CrossReference float64 `json:"cross_reference"`
	Operational    float64 `json:"operational"`
	Strategic      float64 `json:"strategic"`

	Primary       float64 `json:"primary"`        // weighted primary composite
	Secondary     float64 `json:"secondary"`      // weighted secondary composite
	ContextFactor float64 `json:"context_factor"` // trend * novelty * confirmation

	Overall    float64  `json:"overall"`    // clamped to [0,100]
	Confidence float64  `json:"confidence"` // [30,100]
	Priority   Priority `json:"priority"`

	ThreatLevel  string `json:"threat_level"`
	TensionPairs int    `json:"tension_pairs"`
	Escalated    bool   `json:"escalated"` // priority raised by the escalation rule
}

// QualityVerdict is one stage's judgment of a document. A document collects
// one verdict per stage it reaches; a rejected document's last verdict
// carries the reason.
type QualityVerdict struct {
	Stage  string  `json:"stage"`
	Score  float64 `json:"score"`
	Level  string  `json:"level,omitempty"`
	Reason string  `json:"reason,omitempty"` // non-empty only on rejection
}

// StageReport captures one stage's counts and timing for the audit trail.
type StageReport struct {
	Name     string        `json:"name"`
	Input    int           `json:"input"`
	Passed   int           `json:"passed"`
	Rejected int           `json:"rejected"`
	Took     time.Duration `json:"took"`
}

// ClusterRecord is the audit record of one resolved duplicate cluster.
type ClusterRecord struct {
	PrimaryID    string             `json:"primary_id"`
	DuplicateIDs []string           `json:"duplicate_ids"`
	Similarity   map[string]float64 `json:"similarity"` // duplicate ID -> pairwise similarity to primary
}

// PipelineReport is the audit trail for one batch. It is built by the
// orchestrator during a run and is immutable once the batch finishes.
type PipelineReport struct {
	ID           string          `json:"id"`
	Started      time.Time       `json:"started"`
	Finished     time.Time       `json:"finished"`
	Stages       []StageReport   `json:"stages"`
	Clusters     []ClusterRecord `json:"clusters,omitempty"`
	Distribution map[string]int  `json:"distribution"` // signal grade -> count
}
