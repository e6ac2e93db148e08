package audio

import (
	"math"
	"time"
)

// TrimOptions controls silence trimming.
type TrimOptions struct {
	// ThresholdDB is the loudness (in dBFS) at or below which a frame is
	// considered silent. Typical values range from -60 (very sensitive) to
	// -30 (conservative). Zero means the default of -40 dBFS.
	ThresholdDB float64

	// MinSilence is the minimum duration a quiet stretch must last to be
	// treated as silence. Shorter quiet stretches are kept. Zero means the
	// default of 300ms.
	MinSilence time.Duration
}

const (
	defaultThresholdDB = -40
	defaultMinSilence  = 300 * time.Millisecond

	// trimFrame is the analysis window for loudness measurement.
	trimFrame = 10 * time.Millisecond
)

func (o TrimOptions) withDefaults() TrimOptions {
	if o.ThresholdDB == 0 {
		o.ThresholdDB = defaultThresholdDB
	}
	if o.MinSilence == 0 {
		o.MinSilence = defaultMinSilence
	}
	return o
}

// TrimSilence removes leading and trailing silence from a mono clip.
//
// The clip is scanned in 10ms frames; a frame is silent when its RMS
// loudness is at or below ThresholdDB. Only leading and trailing silent
// runs of at least MinSilence are removed. If the whole clip is silent,
// the clip is returned unchanged so callers can proceed and let the
// downstream extractor decide.
func TrimSilence(clip *Clip, opts TrimOptions) *Clip {
	opts = opts.withDefaults()
	if clip.Channels != 1 || clip.SampleRate <= 0 || len(clip.Samples) == 0 {
		return clip
	}

	frameLen := int(time.Duration(clip.SampleRate) * trimFrame / time.Second)
	if frameLen <= 0 {
		return clip
	}
	numFrames := (len(clip.Samples) + frameLen - 1) / frameLen
	if numFrames == 0 {
		return clip
	}

	silent := make([]bool, numFrames)
	allSilent := true
	for i := range silent {
		start := i * frameLen
		end := start + frameLen
		if end > len(clip.Samples) {
			end = len(clip.Samples)
		}
		silent[i] = rmsDBFS(clip.Samples[start:end]) <= opts.ThresholdDB
		if !silent[i] {
			allSilent = false
		}
	}
	if allSilent {
		return clip
	}

	minFrames := int(opts.MinSilence / trimFrame)

	// Leading run.
	lead := 0
	for lead < numFrames && silent[lead] {
		lead++
	}
	// Trailing run.
	trail := 0
	for trail < numFrames && silent[numFrames-1-trail] {
		trail++
	}

	start := 0
	if lead >= minFrames {
		start = lead * frameLen
	}
	end := len(clip.Samples)
	if trail >= minFrames {
		end = (numFrames - trail) * frameLen
	}
	if start >= end {
		return clip
	}

	return &Clip{
		SampleRate: clip.SampleRate,
		Channels:   1,
		Samples:    clip.Samples[start:end],
	}
}

// rmsDBFS returns the RMS loudness of the samples in dB relative to
// full scale. An all-zero window returns -inf.
func rmsDBFS(samples []int16) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / 32768.0
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}
