package voiceprint

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"os"

	"github.com/voiceguard/voiceguard/pkg/embedding"
)

// Fake is a deterministic Extractor for tests: the embedding depends only
// on the waveform bytes, so identical recordings always yield the same
// vector — regardless of where the pipeline staged them on disk — and
// distinct recordings yield (with high probability) dissimilar vectors.
type Fake struct {
	dim int

	// Err, when set, is returned by every Extract call.
	Err error
}

// NewFake creates a Fake producing vectors of the given dimension.
func NewFake(dim int) *Fake {
	return &Fake{dim: dim}
}

// Extract derives a stable pseudo-random unit vector from the file
// contents at wavPath. A missing or unreadable file is an error, matching
// the real extractor's behavior.
func (f *Fake) Extract(_ context.Context, wavPath string) (embedding.Vector, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("voiceprint: fake extract: %w", err)
	}

	h := fnv.New64a()
	h.Write(data)
	seed := h.Sum64()

	vec := make(embedding.Vector, f.dim)
	var norm float64
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		v := float64(int64(seed>>11))/float64(1<<52) - 1 // in [-1, 1)
		vec[i] = v
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Dimension returns the fake's embedding dimension.
func (f *Fake) Dimension() int { return f.dim }

// Close is a no-op.
func (f *Fake) Close() error { return nil }
