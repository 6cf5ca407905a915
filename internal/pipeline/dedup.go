package pipeline

import (
	"sort"
	"time"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/similarity"
)

// temporalWindow is the span over which temporal proximity decays to zero.
const temporalWindow = 24 * time.Hour

// Detector finds near-duplicate documents by exact pairwise comparison.
// Detection is O(n²) by design: the combined-similarity threshold is a
// calibrated contract and approximate prefilters would change which pairs
// cross it.
type Detector struct {
	threshold float64
}

// NewDetector creates a detector with the given combined-similarity
// threshold (0.85 canonical).
func NewDetector(threshold float64) *Detector {
	return &Detector{threshold: threshold}
}

// Similarity returns the combined similarity of two documents:
// title 0.4 + content 0.3 + exact-URL 0.2 + temporal proximity 0.1.
// Symmetric: Similarity(a,b) == Similarity(b,a) bit-for-bit.
func (d *Detector) Similarity(a, b model.Document, now time.Time) float64 {
	title := similarity.TextSimilarity(
		similarity.NormalizeTitle(a.Title), similarity.NormalizeTitle(b.Title))
	content := similarity.TextSimilarity(a.Content, b.Content)

	url := 0.0
	if a.URL != "" && a.URL == b.URL {
		url = 1.0
	}

	temporal := similarity.TemporalProximity(
		a.EffectiveTime(now), b.EffectiveTime(now), temporalWindow)

	return title*0.4 + content*0.3 + url*0.2 + temporal*0.1
}

// dedupResult is the output of one detection pass.
type dedupResult struct {
	retained    []int          // indexes into docs, original order
	duplicateOf map[int]int    // duplicate index -> retained primary index
	clusters    []model.ClusterRecord
}

// detect runs pairwise comparison over docs, chains duplicate pairs into
// clusters by union, and retains each cluster's highest-quality member.
// Deterministic given input order: pairs are compared in index order and
// quality ties break toward the earliest batch position.
func (d *Detector) detect(docs []model.Document, now time.Time) dedupResult {
	n := len(docs)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			if rj < ri {
				ri, rj = rj, ri
			}
			parent[rj] = ri // root is always the lowest index
		}
	}

	// Exact pairwise comparison in index order.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d.Similarity(docs[i], docs[j], now) >= d.threshold {
				union(i, j)
			}
		}
	}

	// Group cluster members by root.
	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}
	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	result := dedupResult{duplicateOf: make(map[int]int)}
	for _, root := range roots {
		members := groups[root]
		if len(members) == 1 {
			result.retained = append(result.retained, members[0])
			continue
		}

		// Retain the highest internal quality; earliest index wins ties.
		primary := members[0]
		best := internalQuality(docs[primary])
		for _, m := range members[1:] {
			if q := internalQuality(docs[m]); q > best {
				primary, best = m, q
			}
		}
		result.retained = append(result.retained, primary)

		record := model.ClusterRecord{
			PrimaryID:  docs[primary].ID,
			Similarity: make(map[string]float64),
		}
		for _, m := range members {
			if m == primary {
				continue
			}
			result.duplicateOf[m] = primary
			record.DuplicateIDs = append(record.DuplicateIDs, docs[m].ID)
			// Members chained through an intermediate may sit below the
			// threshold against the primary; the recorded score is still
			// their direct similarity to it.
			record.Similarity[docs[m].ID] = d.Similarity(docs[m], docs[primary], now)
		}
		result.clusters = append(result.clusters, record)
	}

	sort.Ints(result.retained)
	return result
}

// internalQuality ranks cluster members for primary selection:
// 0.3 * source credibility + min(contentLength/10, 30) + 0.4 * relevance.
// The draft annotator relevance stands in for relevance here because
// intelligence scoring runs after deduplication; unset defaults to 50.
func internalQuality(doc model.Document) float64 {
	length := float64(len(doc.Content)) / 10
	if length > 30 {
		length = 30
	}
	relevance := 50.0
	if doc.Annot.RelevanceSet {
		relevance = doc.Annot.Relevance
	}
	return 0.3*doc.Source.Credibility + length + 0.4*relevance
}
