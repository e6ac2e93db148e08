package voiceprint

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/voiceguard/voiceguard/pkg/embedding"
)

// CommandExtractor runs an external helper process to compute embeddings.
//
// The helper is invoked as:
//
//	<command> <args...> <wavPath>
//
// and must print the embedding to stdout as a JSON array of numbers. This
// keeps the heavyweight model runtime (Python, ONNX, etc.) outside this
// process while the engine stays in control of validation.
type CommandExtractor struct {
	command string
	args    []string
	dim     int
}

// NewCommandExtractor creates an extractor that shells out to command.
// dim is the expected embedding dimension; vectors of any other length
// are rejected.
func NewCommandExtractor(command string, args []string, dim int) (*CommandExtractor, error) {
	if command == "" {
		return nil, fmt.Errorf("voiceprint: extractor command must not be empty")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("voiceprint: embedding dimension must be positive, got %d", dim)
	}
	return &CommandExtractor{command: command, args: args, dim: dim}, nil
}

// Extract runs the helper on wavPath and parses its stdout.
func (e *CommandExtractor) Extract(ctx context.Context, wavPath string) (embedding.Vector, error) {
	args := append(append([]string{}, e.args...), wavPath)
	cmd := exec.CommandContext(ctx, e.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("voiceprint: extractor %q: %w: %s", e.command, err, msg)
		}
		return nil, fmt.Errorf("voiceprint: extractor %q: %w", e.command, err)
	}

	vec, err := embedding.Decode(string(bytes.TrimSpace(stdout.Bytes())))
	if err != nil {
		return nil, fmt.Errorf("voiceprint: extractor %q output: %w", e.command, err)
	}
	if vec.Dim() != e.dim {
		return nil, fmt.Errorf("voiceprint: extractor %q returned %d-dimensional vector, want %d", e.command, vec.Dim(), e.dim)
	}
	return vec, nil
}

// Dimension returns the configured embedding dimension.
func (e *CommandExtractor) Dimension() int { return e.dim }

// Close is a no-op: the helper process is spawned per call.
func (e *CommandExtractor) Close() error { return nil }
