// Package voiceprint defines the boundary to the pretrained speaker
// recognition model that turns a waveform into a fixed-length embedding.
//
// The model itself is an external collaborator: this package does not
// implement or retrain it. The Extractor interface abstracts it so the
// enrollment and verification workflows can be wired with the real model
// in production and a deterministic Fake in tests. Extractors are injected,
// never process-wide globals.
package voiceprint

import (
	"context"

	"github.com/voiceguard/voiceguard/pkg/embedding"
)

// Extractor computes a speaker embedding from an audio file.
//
// # Audio Requirements
//
//   - Container: WAV, 16-bit PCM
//   - Sample rate: 16000 Hz
//   - Channels: 1 (mono)
//
// Resampling and channel downmixing are the caller's responsibility (see
// the audio package).
//
// Extraction failures (missing file, decode failure, model error) are
// fatal for the in-flight enrollment or verification attempt only; they
// must never corrupt or partially mutate the identity store.
type Extractor interface {
	// Extract computes the embedding for the waveform at wavPath.
	// The returned vector has length Dimension().
	Extract(ctx context.Context, wavPath string) (embedding.Vector, error)

	// Dimension returns the dimensionality of the vectors produced by
	// Extract (e.g., 192 for ECAPA-TDNN).
	Dimension() int

	// Close releases any resources held by the extractor.
	Close() error
}
