// Package embedding defines the speaker embedding vector type shared by the
// identity store and the match engine.
//
// A Vector is an ordered, fixed-length sequence of floats produced by an
// external speaker-recognition model (e.g., a 192-dimensional ECAPA-TDNN
// embedding). All vectors that are ever compared against each other must
// have the same dimension; comparing vectors of different dimension is an
// error, never a silent truncation.
//
// Vectors serialize to a JSON array of numbers. The encoding is
// order-preserving and lossless to floating precision, and is the form
// stored inside identity records.
package embedding

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vector is a dense speaker embedding.
type Vector []float64

// Dim returns the dimension of the vector.
func (v Vector) Dim() int { return len(v) }

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	cp := make(Vector, len(v))
	copy(cp, v)
	return cp
}

// Encode returns the textual form of the vector: a JSON array of numbers.
func (v Vector) Encode() (string, error) {
	if v == nil {
		v = Vector{}
	}
	data, err := json.Marshal([]float64(v))
	if err != nil {
		return "", fmt.Errorf("embedding: encode: %w", err)
	}
	return string(data), nil
}

// Decode parses the textual form produced by Encode.
func Decode(s string) (Vector, error) {
	var vals []float64
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, fmt.Errorf("embedding: decode: %w", err)
	}
	return Vector(vals), nil
}

// Cosine returns the cosine similarity between a and b, in [-1, 1].
//
// If either vector has zero norm the similarity is 0; Cosine never divides
// by zero. Vectors of different dimension cannot be compared and produce
// an error.
func Cosine(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding: dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp to [-1, 1] to absorb floating point error.
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim, nil
}
