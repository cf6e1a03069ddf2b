// Package deliverable defines the Deliverable record shared by the store, the
// calendar codec and the command line.
package deliverable

import (
	"time"

	"github.com/calvinalkan/deliverables/internal/progress"
)

// DefaultDueIn is the due offset used when a deliverable is created without an
// explicit due time.
const DefaultDueIn = 24 * time.Hour

// Deliverable is a titled task with a creation and a due timestamp.
//
// The type does not validate itself: an empty title or a due time before the
// creation time are representable. Input validation belongs to the callers that
// build records from user input.
type Deliverable struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	DueAt     time.Time `json:"dueAt"`
}

// New returns a deliverable with a freshly generated id.
func New(title string, createdAt, dueAt time.Time) (Deliverable, error) {
	id, err := NewID()
	if err != nil {
		return Deliverable{}, err
	}

	return Deliverable{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt.Round(0),
		DueAt:     dueAt.Round(0),
	}, nil
}

// Equal reports whether d and other hold the same values. Timestamps are
// compared as instants, so a record decoded from disk equals the one encoded.
func (d Deliverable) Equal(other Deliverable) bool {
	return d.ID == other.ID &&
		d.Title == other.Title &&
		d.CreatedAt.Equal(other.CreatedAt) &&
		d.DueAt.Equal(other.DueAt)
}

// WithEdits returns a copy with title and due time replaced. ID and CreatedAt
// are kept.
func (d Deliverable) WithEdits(title string, dueAt time.Time) Deliverable {
	d.Title = title
	d.DueAt = dueAt.Round(0)

	return d
}

// ShortID returns the display form of the record's id. See [ShortID].
func (d Deliverable) ShortID() string {
	return ShortID(d.ID)
}

// Progress returns the remaining-time fraction of the record at now.
func (d Deliverable) Progress(policy progress.Policy, now time.Time) float64 {
	return progress.Progress(policy, d.CreatedAt, d.DueAt, now)
}

// IsOverdue reports whether now is at or past the due time.
func (d Deliverable) IsOverdue(now time.Time) bool {
	return progress.IsOverdue(d.DueAt, now)
}
