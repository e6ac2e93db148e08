// Package match decides whether a query embedding matches an enrolled
// identity.
//
// The engine is stateless: Verify is a pure computation over its arguments.
// Expected outcomes (no enrollments, no match above threshold) are values,
// not errors; only genuine data faults such as a dimension mismatch are
// reported as errors.
package match

import (
	"fmt"

	"github.com/voiceguard/voiceguard/pkg/embedding"
	"github.com/voiceguard/voiceguard/pkg/identity"
)

// Decision is the outcome kind of a verification.
type Decision int

const (
	// NoEnrollments means there were no candidates to compare against.
	NoEnrollments Decision = iota

	// NoMatch means no candidate scored at or above the threshold.
	NoMatch

	// Matched means the best-scoring candidate met the threshold.
	Matched
)

func (d Decision) String() string {
	switch d {
	case NoEnrollments:
		return "no-enrollments"
	case NoMatch:
		return "no-match"
	case Matched:
		return "matched"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Result is the outcome of a verification.
type Result struct {
	// Decision is the outcome kind.
	Decision Decision

	// Record is the matched identity. Only set when Decision is Matched.
	Record identity.Record

	// BestScore is the highest cosine similarity observed across all
	// candidates. It is reported for NoMatch as well, for diagnostics.
	// Zero and meaningless when Decision is NoEnrollments.
	BestScore float64
}

// Verify compares the query embedding against every candidate and selects
// a decision.
//
// The best candidate is the one with the strictly maximum similarity; ties
// are broken by earliest candidate order (first occurrence of the maximum
// wins). The threshold comparison is inclusive: a best score exactly equal
// to the threshold is a match.
//
// A dimension mismatch between the query and any candidate embedding is a
// data error and fails the whole call; embeddings are never truncated or
// padded to fit.
func Verify(query embedding.Vector, candidates []identity.Record, threshold float64) (Result, error) {
	if len(candidates) == 0 {
		return Result{Decision: NoEnrollments}, nil
	}

	bestIdx := -1
	bestScore := 0.0
	for i, c := range candidates {
		score, err := embedding.Cosine(query, c.Embedding)
		if err != nil {
			return Result{}, fmt.Errorf("match: candidate %d (id %d): %w", i, c.ID, err)
		}
		if bestIdx < 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestScore >= threshold {
		return Result{
			Decision:  Matched,
			Record:    candidates[bestIdx],
			BestScore: bestScore,
		}, nil
	}
	return Result{Decision: NoMatch, BestScore: bestScore}, nil
}
