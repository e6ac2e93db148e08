// Package policy holds the tunable verification policy: the cosine
// similarity threshold consumed by the match engine and the prompt scripts
// read aloud during enrollment and verification.
//
// The policy persists as a small JSON file. Missing fields are filled with
// defaults, and the file is created with defaults on first run so operators
// always have something concrete to edit.
package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Defaults.
const (
	DefaultThreshold          = 0.8
	DefaultRegistrationScript = "My voice is my passport. Please verify me."
	DefaultVerificationScript = "I solemnly swear that I am up to no good."
)

// Policy is the verification policy.
type Policy struct {
	// SimilarityThreshold is the inclusive cosine similarity bound for a
	// match, in [0, 1].
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// RegistrationScript is the text read aloud during enrollment.
	RegistrationScript string `json:"registration_script"`

	// VerificationScript is the text read aloud during verification.
	VerificationScript string `json:"verification_script"`
}

// Default returns the built-in policy.
func Default() Policy {
	return Policy{
		SimilarityThreshold: DefaultThreshold,
		RegistrationScript:  DefaultRegistrationScript,
		VerificationScript:  DefaultVerificationScript,
	}
}

// Validate checks the policy for out-of-range values.
func (p Policy) Validate() error {
	if p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1 {
		return fmt.Errorf("policy: similarity threshold %v out of range [0, 1]", p.SimilarityThreshold)
	}
	return nil
}

// Load reads the policy from path.
//
// A missing file is created with defaults. An unreadable or malformed file
// is rewritten with defaults. Fields absent from the file keep their
// default values.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p := Default()
		if err := Save(path, p); err != nil {
			return Policy{}, err
		}
		return p, nil
	}
	if err != nil {
		return Policy{}, fmt.Errorf("policy: load: %w", err)
	}

	// Decode over defaults so missing fields stay defaulted.
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		p = Default()
		if err := Save(path, p); err != nil {
			return Policy{}, err
		}
		return p, nil
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Save writes the policy to path, creating parent directories as needed.
func Save(path string, p Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("policy: save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("policy: save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("policy: save: %w", err)
	}
	return nil
}
