package identity

import (
	"context"
	"fmt"
)

// Session is a short-lived staging buffer for new records.
//
// Records added to a session are not visible to the store until Commit.
// A commit is all-or-nothing for the staged batch: if the underlying
// persist fails, the store is unchanged and the staged records remain
// pending so the commit can be retried. Sessions have no visibility of
// records staged by other sessions.
type Session struct {
	repo    Repository
	pending []Record
}

// NewSession creates a Session over the given repository.
func NewSession(repo Repository) *Session {
	return &Session{repo: repo}
}

// Add stages a record for the next commit. The record must be well formed
// and unpersisted (id unset); violations wrap ErrValidation. Add never
// touches the store.
func (s *Session) Add(r Record) error {
	if r.ID != 0 {
		return fmt.Errorf("%w: record already has id %d; only unpersisted records can be staged", ErrValidation, r.ID)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	r.Embedding = r.Embedding.Clone()
	s.pending = append(s.pending, r)
	return nil
}

// Pending returns the number of staged records.
func (s *Session) Pending() int { return len(s.pending) }

// Commit persists all staged records in one atomic write and returns the
// committed batch with its assigned ids.
//
// Ids are assigned in insertion order: the first staged record receives
// NextID of the current store contents, the second NextID+1, and so on.
// An empty pending list is a no-op returning nil. On persist failure the
// pending list is left intact for retry.
func (s *Session) Commit(ctx context.Context) ([]Record, error) {
	if len(s.pending) == 0 {
		return nil, nil
	}

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := NextID(current)
	combined := make([]Record, 0, len(current)+len(s.pending))
	combined = append(combined, current...)
	committed := make([]Record, 0, len(s.pending))
	for i, r := range s.pending {
		r.ID = next + int64(i)
		combined = append(combined, r)
		committed = append(committed, r)
	}

	if err := s.repo.Persist(ctx, combined); err != nil {
		return nil, err
	}
	s.pending = s.pending[:0]
	return committed, nil
}

// Records returns the latest persisted record set. Every call is a fresh
// Load, so changes committed by other sessions or deletions are visible
// immediately.
func (s *Session) Records(ctx context.Context) ([]Record, error) {
	return s.repo.Load(ctx)
}
