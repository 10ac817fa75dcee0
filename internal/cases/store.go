package cases

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get and Escalate for unknown case ids.
var ErrNotFound = errors.New("case not found")

// Filter narrows List results for the review surface. Zero values mean
// "no constraint".
type Filter struct {
	// Phone matches as a case-insensitive substring of the stored address.
	Phone string
	// MinConfidence keeps cases whose parsed diagnosis confidence is at
	// least this value; unparseable diagnoses count as confidence 0.
	MinConfidence int
	// EscalatedOnly keeps escalated cases.
	EscalatedOnly bool
}

// Store is the single storage service shared by all webhook handlers. It
// hides the storage engine's locking discipline: Admit is atomic per sender,
// Record inserts are independent, Escalate is idempotent and monotone.
type Store interface {
	// Admit reports whether the sender may submit an image at time now.
	// On admission the sender's last-accepted timestamp is set to now in
	// the same atomic step; on rejection nothing is written.
	Admit(ctx context.Context, phone string, now time.Time) (bool, error)

	// Record appends a case and returns its assigned id.
	Record(ctx context.Context, c *Case) (int64, error)

	// Escalate sets escalated=true on an existing case. ErrNotFound for
	// unknown ids; re-escalating is a no-op.
	Escalate(ctx context.Context, id int64) error

	// Get returns one case by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Case, error)

	// List returns cases matching f, newest first.
	List(ctx context.Context, f Filter) ([]Case, error)
}

// matchesConfidence applies Filter.MinConfidence to a stored case.
func matchesConfidence(c *Case, min int) bool {
	if min <= 0 {
		return true
	}
	d, err := c.ParseDiagnosis()
	if err != nil {
		return false
	}
	return d.Confidence >= min
}
