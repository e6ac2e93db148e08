// Package audio provides the waveform plumbing upstream of the embedding
// extractor: a minimal WAV (RIFF) codec for 16-bit PCM, leading/trailing
// silence trimming, and conversion of arbitrary PCM16 WAV input to the
// canonical mono 16 kHz form the speaker model expects.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

// TargetRate is the canonical sample rate expected by the embedding model.
const TargetRate = 16000

// Clip is decoded 16-bit PCM audio. Samples are interleaved when Channels
// is greater than one.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// Duration returns the playback duration of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 || c.Channels <= 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// Mono returns the clip downmixed to one channel by averaging. A clip that
// is already mono is returned as-is.
func (c *Clip) Mono() *Clip {
	if c.Channels <= 1 {
		return c
	}
	frames := len(c.Samples) / c.Channels
	mono := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum int
		for ch := 0; ch < c.Channels; ch++ {
			sum += int(c.Samples[i*c.Channels+ch])
		}
		mono[i] = int16(sum / c.Channels)
	}
	return &Clip{SampleRate: c.SampleRate, Channels: 1, Samples: mono}
}

const (
	riffHeaderSize = 12
	fmtChunkID     = "fmt "
	dataChunkID    = "data"
	pcmFormat      = 1
)

// ReadWAV decodes a 16-bit PCM WAV file.
func ReadWAV(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: read wav: %w", err)
	}
	return DecodeWAV(data)
}

// DecodeWAV decodes 16-bit PCM WAV bytes.
func DecodeWAV(data []byte) (*Clip, error) {
	if len(data) < riffHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("audio: not a RIFF/WAVE file")
	}

	le := binary.LittleEndian
	var clip Clip
	var sawFmt, sawData bool

	// Walk the chunk list. Chunks are word-aligned.
	off := riffHeaderSize
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(le.Uint32(data[off+4 : off+8]))
		body := data[off+8:]
		if size > len(body) {
			return nil, fmt.Errorf("audio: truncated %q chunk", id)
		}
		body = body[:size]

		switch id {
		case fmtChunkID:
			if size < 16 {
				return nil, fmt.Errorf("audio: short fmt chunk")
			}
			format := le.Uint16(body[0:2])
			channels := int(le.Uint16(body[2:4]))
			rate := int(le.Uint32(body[4:8]))
			bits := le.Uint16(body[14:16])
			if format != pcmFormat {
				return nil, fmt.Errorf("audio: unsupported wav format %d (want PCM)", format)
			}
			if bits != 16 {
				return nil, fmt.Errorf("audio: unsupported bit depth %d (want 16)", bits)
			}
			if channels <= 0 || rate <= 0 {
				return nil, fmt.Errorf("audio: invalid fmt chunk: %d channels, %d Hz", channels, rate)
			}
			clip.Channels = channels
			clip.SampleRate = rate
			sawFmt = true
		case dataChunkID:
			samples := make([]int16, size/2)
			for i := range samples {
				samples[i] = int16(le.Uint16(body[i*2 : i*2+2]))
			}
			clip.Samples = samples
			sawData = true
		}

		off += 8 + size
		if size%2 == 1 {
			off++ // padding byte
		}
	}

	if !sawFmt || !sawData {
		return nil, fmt.Errorf("audio: missing fmt or data chunk")
	}
	return &clip, nil
}

// WriteWAV encodes the clip as a 16-bit PCM WAV file.
func WriteWAV(path string, clip *Clip) error {
	data, err := EncodeWAV(clip)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("audio: write wav: %w", err)
	}
	return nil
}

// EncodeWAV encodes the clip as 16-bit PCM WAV bytes.
func EncodeWAV(clip *Clip) ([]byte, error) {
	if clip.SampleRate <= 0 || clip.Channels <= 0 {
		return nil, fmt.Errorf("audio: encode wav: invalid format: %d channels, %d Hz", clip.Channels, clip.SampleRate)
	}

	le := binary.LittleEndian
	dataSize := len(clip.Samples) * 2
	var buf bytes.Buffer
	buf.Grow(riffHeaderSize + 24 + 8 + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, le, uint32(4+24+8+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString(fmtChunkID)
	binary.Write(&buf, le, uint32(16))
	binary.Write(&buf, le, uint16(pcmFormat))
	binary.Write(&buf, le, uint16(clip.Channels))
	binary.Write(&buf, le, uint32(clip.SampleRate))
	binary.Write(&buf, le, uint32(clip.SampleRate*clip.Channels*2)) // byte rate
	binary.Write(&buf, le, uint16(clip.Channels*2))                 // block align
	binary.Write(&buf, le, uint16(16))                              // bits per sample

	buf.WriteString(dataChunkID)
	binary.Write(&buf, le, uint32(dataSize))
	for _, s := range clip.Samples {
		binary.Write(&buf, le, s)
	}
	return buf.Bytes(), nil
}
