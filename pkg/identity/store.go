package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/voiceguard/voiceguard/pkg/embedding"
)

// Repository is the durable collection of identity records.
//
// Load returns the complete persisted set; Persist atomically replaces it.
// Implementations must guarantee that a reader never observes a partially
// written set.
type Repository interface {
	// Load reads all persisted records. A missing representation yields an
	// empty set, not an error.
	Load(ctx context.Context) ([]Record, error)

	// Persist writes the complete record set, replacing prior contents.
	// Write failures (disk full, permissions) propagate to the caller and
	// leave the previous contents intact.
	Persist(ctx context.Context, records []Record) error
}

// Store is a Repository backed by a single JSON file on the local
// filesystem. See the package documentation for the on-disk format.
type Store struct {
	path   string
	logger *slog.Logger
}

// Open creates a Store for the given file path.
//
// On first run the file is created with an empty listing. If the file
// exists but is structurally corrupt, it is rewritten as an empty listing
// and a warning is logged: availability is preferred over strictness here,
// matching the behavior callers of Load depend on. If logger is nil,
// slog.Default() is used.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.Persist(context.Background(), nil); err != nil {
			return nil, fmt.Errorf("identity: initialize store: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("identity: open store: %w", err)
	default:
		if _, perr := parseListing(data); perr != nil {
			logger.Warn("identity store is corrupt; resetting to empty",
				"path", path, "error", perr)
			if err := s.Persist(context.Background(), nil); err != nil {
				return nil, fmt.Errorf("identity: reset corrupt store: %w", err)
			}
		}
	}
	return s, nil
}

// Path returns the file path backing the store.
func (s *Store) Path() string { return s.path }

// Load reads the full record set from disk.
//
// A missing file yields an empty set. A corrupt file also yields an empty
// set (with a logged warning) rather than an error; callers must not assume
// corruption is observable through Load.
func (s *Store) Load(_ context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load: %w", err)
	}

	records, err := parseListing(data)
	if err != nil {
		s.logger.Warn("identity store is corrupt; treating as empty",
			"path", s.path, "error", err)
		return nil, nil
	}
	return records, nil
}

// Persist atomically replaces the store contents with the given records.
// The new listing is written to a temporary file in the same directory and
// renamed into place, so readers never observe a partial write.
func (s *Store) Persist(_ context.Context, records []Record) error {
	listing := fileListing{Users: make([]recordJSON, 0, len(records))}
	for _, r := range records {
		rj, err := toJSON(r)
		if err != nil {
			return err
		}
		listing.Users = append(listing.Users, rj)
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return fmt.Errorf("identity: persist: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("identity: persist: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("identity: persist: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("identity: persist: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("identity: persist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("identity: persist: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("identity: persist: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("identity: persist: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, persists the remainder, and
// reports whether a record was removed. Deleting an unknown id is not an
// error; it returns false and leaves the store unchanged.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	if err := s.Persist(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// NextID returns the id the next committed record would receive:
// one greater than the maximum existing id, or 1 for an empty set.
func NextID(records []Record) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// fileListing is the on-disk envelope. The legacy format is a bare list.
type fileListing struct {
	Users []recordJSON `json:"users"`
}

type recordJSON struct {
	ID          int64  `json:"id,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Embedding   string `json:"embedding"`
}

func toJSON(r Record) (recordJSON, error) {
	enc, err := r.Embedding.Encode()
	if err != nil {
		return recordJSON{}, fmt.Errorf("identity: encode record %d: %w", r.ID, err)
	}
	return recordJSON{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth.String(),
		Embedding:   enc,
	}, nil
}

func fromJSON(rj recordJSON) (Record, error) {
	dob, err := ParseDate(rj.DateOfBirth)
	if err != nil {
		return Record{}, err
	}
	vec, err := embedding.Decode(rj.Embedding)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:          rj.ID,
		FirstName:   rj.FirstName,
		LastName:    rj.LastName,
		DateOfBirth: dob,
		Embedding:   vec,
	}, nil
}

// parseListing decodes the durable representation, accepting both the
// enveloped {"users": [...]} form and the legacy bare-list form.
func parseListing(data []byte) ([]Record, error) {
	var envelope fileListing
	var raw []recordJSON

	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Users != nil {
		raw = envelope.Users
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("identity: malformed listing: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, rj := range raw {
		r, err := fromJSON(rj)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
