package domain

import "context"

// Snapshot is the remote store's full state as returned by LoadAll. It is
// merged into the local stores wholesale; remote wins, no diffing.
type Snapshot struct {
	RoomLimits     map[RoomSize]int
	AvailableNames []string
	UsedNames      []string
	Submissions    []*Submission
}

// SyncGateway is the boundary to the external spreadsheet-backed store.
// Every operation is a single round trip with no implicit retry; any
// failure wraps ErrTransport and must leave local state untouched by the
// caller.
type SyncGateway interface {
	LoadAll(ctx context.Context) (*Snapshot, error)
	PersistSubmission(ctx context.Context, sub *Submission) error
	DeleteSubmission(ctx context.Context, id string) error
	UpdateCapacity(ctx context.Context, size RoomSize, limit int) error
	ResetAll(ctx context.Context) error
	// ReplaceNames overwrites the remote roster.
	ReplaceNames(ctx context.Context, names []string) error
	// ExportSubmissions returns the remote store's spreadsheet export
	// (XLSX bytes) for the admin download.
	ExportSubmissions(ctx context.Context) ([]byte, error)
}
