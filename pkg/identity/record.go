// Package identity provides the durable record model for enrolled voice
// identities: the Record type, the JSON-file backed Store, and the Session
// staging object that commits new records transactionally.
//
// # Durable format
//
// Records persist to a single JSON file:
//
//	{
//	  "users": [
//	    {
//	      "id": 1,
//	      "first_name": "Ada",
//	      "last_name": "Lovelace",
//	      "date_of_birth": "1815-12-10",
//	      "embedding": "[0.1, -0.2, ...]"
//	    }
//	  ]
//	}
//
// A bare top-level list (no "users" key) is accepted on read for backward
// compatibility with the legacy format. The embedding is stored as a string
// field holding the vector's own textual encoding.
//
// The store is the single source of truth and is exclusively owned by the
// process; it is not designed for concurrent writers.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/voiceguard/voiceguard/pkg/embedding"
)

// ErrValidation is wrapped by all record validation failures. Callers can
// branch on it to tell user-correctable input errors from store faults.
var ErrValidation = errors.New("identity: validation")

const dateLayout = "2006-01-02"

// Date is a calendar date (year-month-day, no time component).
type Date struct {
	t time.Time
}

// ParseDate parses a date in unambiguous YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date of birth %q: want YYYY-MM-DD", ErrValidation, s)
	}
	return Date{t: t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string { return d.t.Format(dateLayout) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates denote the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Record represents one enrolled person.
//
// ID is assigned by the store at commit time and is never reused after
// deletion. The embedding is produced once at enrollment and is immutable
// thereafter; re-enrollment creates a new record.
type Record struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth Date
	Embedding   embedding.Vector
}

// FullName returns the display name: first name, space, last name.
func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Validate checks that the record is a well-formed enrollment candidate.
// All failures wrap ErrValidation.
func (r Record) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("%w: first name must not be empty", ErrValidation)
	}
	if r.LastName == "" {
		return fmt.Errorf("%w: last name must not be empty", ErrValidation)
	}
	if r.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: date of birth must be set", ErrValidation)
	}
	if len(r.Embedding) == 0 {
		return fmt.Errorf("%w: embedding must not be empty", ErrValidation)
	}
	return nil
}
