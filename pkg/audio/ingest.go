package audio

import (
	"fmt"
	"math"

	resampling "github.com/tphakala/go-audio-resampling"
)

// ToMono16k converts a clip to the canonical form for embedding extraction:
// one channel at 16 kHz. Multi-channel input is downmixed by averaging;
// other sample rates are resampled. A clip already in canonical form is
// returned as-is.
func ToMono16k(clip *Clip) (*Clip, error) {
	mono := clip.Mono()
	if mono.SampleRate == TargetRate {
		return mono, nil
	}
	return resample(mono, TargetRate)
}

// resample converts a mono clip to the given sample rate.
func resample(clip *Clip, rate int) (*Clip, error) {
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(clip.SampleRate),
		OutputRate: float64(rate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("audio: create resampler: %w", err)
	}

	input := make([]float64, len(clip.Samples))
	for i, s := range clip.Samples {
		input[i] = float64(s) / 32768.0
	}

	output, err := rs.Process(input)
	if err != nil {
		return nil, fmt.Errorf("audio: resample %d Hz to %d Hz: %w", clip.SampleRate, rate, err)
	}

	// The resampler's filter holds the tail of the signal until more input
	// arrives. Push silence through until the full converted length is out,
	// otherwise the last few tens of milliseconds are lost.
	expected := int(math.Round(float64(len(clip.Samples)) * float64(rate) / float64(clip.SampleRate)))
	flush := make([]float64, 256)
	for attempts := 0; len(output) < expected && attempts < 64; attempts++ {
		more, err := rs.Process(flush)
		if err != nil {
			return nil, fmt.Errorf("audio: resample %d Hz to %d Hz: %w", clip.SampleRate, rate, err)
		}
		output = append(output, more...)
	}
	if len(output) > expected {
		output = output[:expected]
	}

	samples := make([]int16, len(output))
	for i, v := range output {
		switch {
		case v > 1.0:
			samples[i] = 32767
		case v < -1.0:
			samples[i] = -32768
		default:
			samples[i] = int16(v * 32767.0)
		}
	}
	return &Clip{SampleRate: rate, Channels: 1, Samples: samples}, nil
}
