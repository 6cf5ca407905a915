// Package similarity provides the pure text and entity similarity functions
// used by duplicate detection. All functions are stateless, symmetric in
// their two arguments, and deterministic.
package similarity

import (
	"math"
	"strings"
	"time"
)

// commonPrefixes are wire-style title prefixes stripped before comparing
// titles, so "BREAKING: X" and "X" dedupe against each other.
var commonPrefixes = []string{
	"breaking:",
	"update:",
	"updated:",
	"exclusive:",
	"just in:",
	"developing:",
	"watch:",
	"live:",
	"opinion:",
	"analysis:",
}

// NormalizeTitle lowercases a title and removes a single common news prefix.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, prefix := range commonPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			normalized = strings.TrimSpace(strings.TrimPrefix(normalized, prefix))
			break
		}
	}
	return normalized
}

// Tokenize splits text into lowercase whitespace-delimited tokens with
// surrounding punctuation trimmed.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()[]{}")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Jaccard returns the token-set Jaccard index of two texts: |A∩B| / |A∪B|.
// Two empty texts are identical (1.0); one empty text matches nothing (0.0).
func Jaccard(a, b string) float64 {
	setA := tokenSet(Tokenize(a))
	setB := tokenSet(Tokenize(b))
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// Cosine returns the cosine similarity of the term-frequency vectors of two
// texts.
func Cosine(a, b string) float64 {
	freqA := termFreq(Tokenize(a))
	freqB := termFreq(Tokenize(b))
	if len(freqA) == 0 && len(freqB) == 0 {
		return 1.0
	}
	if len(freqA) == 0 || len(freqB) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for tok, fa := range freqA {
		if fb, ok := freqB[tok]; ok {
			dot += float64(fa) * float64(fb)
		}
		normA += float64(fa) * float64(fa)
	}
	for _, fb := range freqB {
		normB += float64(fb) * float64(fb)
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// LCSRatio returns the length of the longest common subsequence of the two
// texts' token sequences, divided by the longer sequence length.
func LCSRatio(a, b string) float64 {
	toksA := Tokenize(a)
	toksB := Tokenize(b)
	if len(toksA) == 0 && len(toksB) == 0 {
		return 1.0
	}
	if len(toksA) == 0 || len(toksB) == 0 {
		return 0.0
	}

	// Classic DP over token sequences, two rolling rows.
	prev := make([]int, len(toksB)+1)
	curr := make([]int, len(toksB)+1)
	for i := 1; i <= len(toksA); i++ {
		for j := 1; j <= len(toksB); j++ {
			if toksA[i-1] == toksB[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	longer := len(toksA)
	if len(toksB) > longer {
		longer = len(toksB)
	}
	return float64(prev[len(toksB)]) / float64(longer)
}

// EntityOverlap returns the Jaccard index of two entity sets. Entity strings
// are compared exactly (the pipeline normalizes them to uppercase upfront).
func EntityOverlap(a, b []string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for e := range setA {
		if setB[e] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// TemporalProximity returns 1.0 for simultaneous timestamps, decaying
// linearly to 0.0 at the window boundary.
func TemporalProximity(a, b time.Time, window time.Duration) float64 {
	if window <= 0 {
		return 0.0
	}
	gap := a.Sub(b)
	if gap < 0 {
		gap = -gap
	}
	if gap >= window {
		return 0.0
	}
	return 1.0 - float64(gap)/float64(window)
}

// TextSimilarity blends Jaccard (0.4), TF cosine (0.4), and LCS ratio (0.2)
// into the composite used for title and content comparison.
func TextSimilarity(a, b string) float64 {
	return Jaccard(a, b)*0.4 + Cosine(a, b)*0.4 + LCSRatio(a, b)*0.2
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func termFreq(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}
