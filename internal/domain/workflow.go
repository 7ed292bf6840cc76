package domain

import "context"

// WorkflowState is a step in the reservation wizard.
type WorkflowState string

const (
	StateChoosingRoomSize WorkflowState = "choosing_room_size"
	StateChoosingNames    WorkflowState = "choosing_names"
	StateConfirming       WorkflowState = "confirming"
	StateSubmitting       WorkflowState = "submitting"
	StateSuccess          WorkflowState = "success"
)

// Draft is the in-progress, not-yet-submitted selection. RoomSize is zero
// until a size has been chosen; Names never exceeds RoomSize and never
// contains duplicates.
type Draft struct {
	RoomSize RoomSize `json:"room_size"`
	Names    []string `json:"names"`
}

// Complete reports whether the draft holds exactly RoomSize names.
func (d Draft) Complete() bool {
	return d.RoomSize > 0 && len(d.Names) == int(d.RoomSize)
}

// ConfirmationSummary is the human-readable recap shown before submit.
// swagger:model ConfirmationSummary
type ConfirmationSummary struct {
	RoomSize RoomSize `json:"room_size"`
	Names    []string `json:"names"`
	Message  string   `json:"message"`
}

// ReservationWorkflow drives one client session through the wizard:
// ChoosingRoomSize -> ChoosingNames -> Confirming -> Submitting ->
// Success, with back and failure transitions. Local checks give fast
// feedback; the remote store remains the final arbiter at submit time.
type ReservationWorkflow interface {
	State() WorkflowState
	Draft() Draft
	SelectRoomSize(size RoomSize) error
	ToggleName(name string) error
	GoBack() error
	RequestConfirmation() (*ConfirmationSummary, error)
	CancelConfirmation() error
	// ConfirmAndSubmit persists the draft remotely and, on success, applies
	// the same mutation locally. Re-entrant calls fail with
	// ErrAlreadyInProgress.
	ConfirmAndSubmit(ctx context.Context) (*Submission, error)
	StartNewSelection() error
}

// AdminService is the authenticated console: capacity edits, submission
// management, roster management, and full data reset/refresh.
type AdminService interface {
	// Authenticate checks the shared passphrase and returns a session
	// token on success.
	Authenticate(passphrase string) (token string, err error)
	UpdateCapacity(ctx context.Context, size RoomSize, limit int) error
	ListSubmissions() []*Submission
	DeleteSubmission(ctx context.Context, id string) error
	ResetAll(ctx context.Context) error
	// Refresh re-runs the initial load; the remote snapshot overwrites all
	// local state.
	Refresh(ctx context.Context) error
	ListNames() []NameEntry
	ReplaceRoster(ctx context.Context, names []string) error
	ExportSubmissions(ctx context.Context) ([]byte, error)
}
