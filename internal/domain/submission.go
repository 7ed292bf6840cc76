package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoomSize is a supported party size (normally 2 through 5). The capacity
// ledger is the authority on which sizes exist; everything else validates
// through it.
type RoomSize int

func (s RoomSize) Int() int { return int(s) }

// Submission is a persisted reservation: a room of a given size booked for
// an ordered list of distinct roster names.
// swagger:model Submission
type Submission struct {
	ID        string    `json:"id"`
	RoomSize  RoomSize  `json:"room_size"`
	Names     []string  `json:"names"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSubmission builds a Submission with a fresh ID and the given creation
// instant. Names are copied so later draft edits cannot alias the record.
func NewSubmission(size RoomSize, names []string, at time.Time) *Submission {
	return &Submission{
		ID:        NewSubmissionID(at),
		RoomSize:  size,
		Names:     append([]string(nil), names...),
		Timestamp: at,
	}
}

// NewSubmissionID returns a process-unique opaque ID: a base36 timestamp
// for rough ordering plus a UUID fragment for collision resistance. The
// RSA_ prefix is the format the spreadsheet side already stores.
func NewSubmissionID(at time.Time) string {
	frag := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return "RSA_" + strconv.FormatInt(at.UnixMilli(), 36) + "_" + frag
}

// SubmissionLog holds the session's view of all active submissions.
// Implementations must be safe for concurrent use.
type SubmissionLog interface {
	Append(sub *Submission)
	// Remove deletes the submission with the given ID and returns it, or
	// ErrNotFound if no such submission is logged.
	Remove(id string) (*Submission, error)
	Get(id string) (*Submission, error)
	// List returns submissions newest-first; equal timestamps keep their
	// original insertion order.
	List() []*Submission
	Len() int
	Clear()
	Replace(subs []*Submission)
}
