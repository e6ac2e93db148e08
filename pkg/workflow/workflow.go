// Package workflow orchestrates the enrollment and verification paths:
// waveform ingest, silence trimming, embedding extraction, and the store
// commit or match decision.
//
// The engine operations are synchronous; callers decide whether to run
// them on a background worker. A failed or abandoned attempt leaves the
// identity store exactly as it was: validation happens before any audio
// work, audio work happens before any store write, and the store write is
// a single atomic commit.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/voiceguard/voiceguard/pkg/audio"
	"github.com/voiceguard/voiceguard/pkg/embedding"
	"github.com/voiceguard/voiceguard/pkg/identity"
	"github.com/voiceguard/voiceguard/pkg/journal"
	"github.com/voiceguard/voiceguard/pkg/match"
	"github.com/voiceguard/voiceguard/pkg/voiceprint"
)

// Options configures an Engine.
type Options struct {
	// Store is the identity record store. Required.
	Store *identity.Store

	// Extractor computes speaker embeddings. Required.
	Extractor voiceprint.Extractor

	// Journal records completed attempts. Optional; nil disables
	// journaling. Journal failures never fail an attempt.
	Journal *journal.Journal

	// WorkDir holds transient audio artifacts. Defaults to os.TempDir().
	// Artifacts are deleted best-effort once the embedding is extracted.
	WorkDir string

	// TrimOptions controls silence trimming. Zero values mean defaults.
	Trim audio.TrimOptions

	// Logger receives workflow events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine runs enrollment and verification attempts.
type Engine struct {
	store     *identity.Store
	extractor voiceprint.Extractor
	journal   *journal.Journal
	workDir   string
	trim      audio.TrimOptions
	logger    *slog.Logger
}

// New creates an Engine.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("workflow: Options.Store is required")
	}
	if opts.Extractor == nil {
		return nil, errors.New("workflow: Options.Extractor is required")
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		store:     opts.Store,
		extractor: opts.Extractor,
		journal:   opts.Journal,
		workDir:   opts.WorkDir,
		trim:      opts.Trim,
		logger:    opts.Logger,
	}, nil
}

// EnrollRequest describes a new identity to enroll.
type EnrollRequest struct {
	FirstName   string
	LastName    string
	DateOfBirth string // YYYY-MM-DD
	WAVPath     string // the spoken enrollment script
}

// Enroll registers a new identity from a recorded waveform.
//
// Input validation happens before any audio processing, and nothing is
// persisted unless the whole pipeline succeeds. The returned record
// carries its assigned id.
func (e *Engine) Enroll(ctx context.Context, req EnrollRequest) (identity.Record, error) {
	dob, err := identity.ParseDate(req.DateOfBirth)
	if err != nil {
		return identity.Record{}, err
	}
	if req.FirstName == "" || req.LastName == "" {
		return identity.Record{}, fmt.Errorf("%w: first and last name must not be empty", identity.ErrValidation)
	}

	vec, err := e.embed(ctx, req.WAVPath)
	if err != nil {
		return identity.Record{}, err
	}

	record := identity.Record{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Embedding:   vec,
	}

	sess := identity.NewSession(e.store)
	if err := sess.Add(record); err != nil {
		return identity.Record{}, err
	}
	batch, err := sess.Commit(ctx)
	if err != nil {
		return identity.Record{}, err
	}
	committed := batch[0]

	e.logger.Info("enrolled identity",
		"id", committed.ID, "name", committed.FullName())
	e.journalAppend(ctx, journal.Entry{
		Kind:     journal.KindEnroll,
		Outcome:  "committed",
		RecordID: committed.ID,
		FullName: committed.FullName(),
	})
	return committed, nil
}

// Verify compares a recorded waveform against all enrolled identities.
//
// Expected outcomes (no enrollments, no match) are reported in the Result;
// only pipeline faults return an error.
func (e *Engine) Verify(ctx context.Context, wavPath string, threshold float64) (match.Result, error) {
	vec, err := e.embed(ctx, wavPath)
	if err != nil {
		return match.Result{}, err
	}

	records, err := e.store.Load(ctx)
	if err != nil {
		return match.Result{}, err
	}

	result, err := match.Verify(vec, records, threshold)
	if err != nil {
		return match.Result{}, err
	}

	entry := journal.Entry{
		Kind:      journal.KindVerify,
		Outcome:   result.Decision.String(),
		BestScore: result.BestScore,
	}
	switch result.Decision {
	case match.Matched:
		entry.RecordID = result.Record.ID
		entry.FullName = result.Record.FullName()
		e.logger.Info("verification matched",
			"id", result.Record.ID, "name", result.Record.FullName(), "score", result.BestScore)
	case match.NoMatch:
		e.logger.Info("verification rejected",
			"best_score", result.BestScore, "threshold", threshold)
	case match.NoEnrollments:
		e.logger.Info("verification without enrollments")
	}
	e.journalAppend(ctx, entry)
	return result, nil
}

// embed runs the audio pipeline: decode, canonicalize to mono 16 kHz,
// trim silence, hand the prepared waveform to the extractor. The prepared
// artifact is deleted best-effort afterwards.
func (e *Engine) embed(ctx context.Context, wavPath string) (embedding.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clip, err := audio.ReadWAV(wavPath)
	if err != nil {
		return nil, err
	}
	clip, err = audio.ToMono16k(clip)
	if err != nil {
		return nil, err
	}
	clip = audio.TrimSilence(clip, e.trim)

	prepared := filepath.Join(e.workDir, "prepared-"+uuid.NewString()+".wav")
	if err := audio.WriteWAV(prepared, clip); err != nil {
		return nil, err
	}
	defer func() {
		// Only the embedding is kept; the waveform is transient.
		if rmErr := os.Remove(prepared); rmErr != nil {
			e.logger.Warn("could not remove prepared audio", "path", prepared, "error", rmErr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.extractor.Extract(ctx, prepared)
}

// journalAppend records an attempt, logging instead of failing on error.
func (e *Engine) journalAppend(ctx context.Context, entry journal.Entry) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Append(ctx, entry); err != nil {
		e.logger.Warn("could not journal attempt", "kind", entry.Kind, "error", err)
	}
}
