// Package journal keeps an append-only audit log of enrollment and
// verification attempts.
//
// Entries are msgpack-encoded and stored in BadgerDB under time-ordered
// keys, so the log can be scanned newest-first without an index. The
// journal is strictly best-effort from the workflow's point of view: a
// journal failure never fails the attempt it describes and never touches
// the identity store.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Kind is the type of attempt being journaled.
type Kind string

const (
	// KindEnroll marks an enrollment attempt.
	KindEnroll Kind = "enroll"

	// KindVerify marks a verification attempt.
	KindVerify Kind = "verify"
)

// Entry describes one completed attempt.
type Entry struct {
	// ID is a unique identifier for the attempt, assigned on Append.
	ID string `msgpack:"id"`

	// Time is when the attempt completed, assigned on Append if unset.
	Time time.Time `msgpack:"time"`

	// Kind is the attempt type.
	Kind Kind `msgpack:"kind"`

	// Outcome is the attempt result (e.g. "committed", "matched",
	// "no-match", "no-enrollments", "failed").
	Outcome string `msgpack:"outcome"`

	// BestScore is the best similarity observed during verification.
	// Zero for enrollments.
	BestScore float64 `msgpack:"best_score,omitempty"`

	// RecordID is the enrolled or matched record id, when applicable.
	RecordID int64 `msgpack:"record_id,omitempty"`

	// FullName is the display name of the enrolled or matched identity.
	FullName string `msgpack:"full_name,omitempty"`
}

const keyPrefix = "attempt:"

// keyTimeLayout is a fixed-width RFC3339 variant: the fractional seconds
// are always nine digits, so lexicographic key order equals chronological
// order. time.RFC3339Nano drops trailing zeros and would break that.
const keyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Options configures the journal.
type Options struct {
	// Dir is the directory for the underlying BadgerDB files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs the journal without disk persistence. For tests.
	InMemory bool
}

// Journal is the attempt log.
type Journal struct {
	db        *badger.DB
	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating if necessary) a journal.
func Open(opts Options) (*Journal, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("journal: Options.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(quietLogger{})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("journal: open: %w", err)
	}
	return &Journal{db: db}, nil
}

// Append records an entry. A zero ID or Time is filled in.
func (j *Journal) Append(_ context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	val, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("journal: encode entry: %w", err)
	}
	key := []byte(keyPrefix + e.Time.UTC().Format(keyTimeLayout) + ":" + e.ID)

	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	var entries []Entry
	err := j.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Reverse = true
		iterOpts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		// Seek past the end of the prefix range, then walk backwards.
		seek := append([]byte(keyPrefix), 0xff)
		for it.Seek(seek); it.ValidForPrefix([]byte(keyPrefix)) && len(entries) < n; it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var e Entry
			if err := msgpack.Unmarshal(val, &e); err != nil {
				return fmt.Errorf("decode entry %q: %w", it.Item().Key(), err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database. Safe to call more than once.
func (j *Journal) Close() error {
	j.closeOnce.Do(func() { j.closeErr = j.db.Close() })
	return j.closeErr
}

// quietLogger suppresses badger's info and debug chatter.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Printf("[journal] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Printf("[journal] WARN: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
