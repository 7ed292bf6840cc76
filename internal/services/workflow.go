package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"roomreserve/internal/domain"
)

// workflow is the per-session reservation state machine. A mutex guards
// the state because HTTP handlers may race on the same session; the
// remote persist call runs outside the lock with the Submitting state
// acting as the single-flight guard.
type workflow struct {
	mu         sync.Mutex
	state      domain.WorkflowState
	draft      domain.Draft
	submitting bool

	ledger  domain.CapacityLedger
	roster  domain.RosterStore
	log     domain.SubmissionLog
	gateway domain.SyncGateway
}

// NewWorkflow creates a ReservationWorkflow in the ChoosingRoomSize state
// over the shared stores and gateway.
func NewWorkflow(
	ledger domain.CapacityLedger,
	roster domain.RosterStore,
	log domain.SubmissionLog,
	gateway domain.SyncGateway,
) domain.ReservationWorkflow {
	return &workflow{
		state:   domain.StateChoosingRoomSize,
		ledger:  ledger,
		roster:  roster,
		log:     log,
		gateway: gateway,
	}
}

func (w *workflow) State() domain.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *workflow) Draft() domain.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.Draft{
		RoomSize: w.draft.RoomSize,
		Names:    append([]string(nil), w.draft.Names...),
	}
}

func (w *workflow) SelectRoomSize(size domain.RoomSize) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateChoosingRoomSize {
		return domain.ErrInvalidState
	}
	remaining, err := w.ledger.Get(size)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return fmt.Errorf("%w: size %d", domain.ErrCapacityExceeded, size)
	}
	if w.roster.AvailableCount() < size.Int() {
		return fmt.Errorf("%w: need %d, have %d free", domain.ErrInsufficientRoster, size, w.roster.AvailableCount())
	}
	w.draft = domain.Draft{RoomSize: size}
	w.state = domain.StateChoosingNames
	return nil
}

func (w *workflow) ToggleName(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateChoosingNames {
		return domain.ErrInvalidState
	}
	for i, n := range w.draft.Names {
		if n == name {
			w.draft.Names = append(w.draft.Names[:i], w.draft.Names[i+1:]...)
			return nil
		}
	}
	if !w.roster.Contains(name) {
		return fmt.Errorf("%w: %q is not on the roster", domain.ErrInvalidInput, name)
	}
	if w.roster.IsUsed(name) {
		return fmt.Errorf("%w: %s", domain.ErrNameUnavailable, name)
	}
	if len(w.draft.Names) >= w.draft.RoomSize.Int() {
		return fmt.Errorf("%w: limit %d", domain.ErrSelectionFull, w.draft.RoomSize)
	}
	w.draft.Names = append(w.draft.Names, name)
	return nil
}

func (w *workflow) GoBack() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateChoosingNames {
		return domain.ErrInvalidState
	}
	w.draft = domain.Draft{}
	w.state = domain.StateChoosingRoomSize
	return nil
}

func (w *workflow) RequestConfirmation() (*domain.ConfirmationSummary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateChoosingNames {
		return nil, domain.ErrInvalidState
	}
	if !w.draft.Complete() {
		return nil, fmt.Errorf("%w: %d of %d selected", domain.ErrIncompleteSelection, len(w.draft.Names), w.draft.RoomSize)
	}
	w.state = domain.StateConfirming
	names := append([]string(nil), w.draft.Names...)
	return &domain.ConfirmationSummary{
		RoomSize: w.draft.RoomSize,
		Names:    names,
		Message:  fmt.Sprintf("Reserve a room for %d people with: %s?", w.draft.RoomSize, strings.Join(names, ", ")),
	}, nil
}

func (w *workflow) CancelConfirmation() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateConfirming {
		return domain.ErrInvalidState
	}
	w.state = domain.StateChoosingNames
	return nil
}

func (w *workflow) ConfirmAndSubmit(ctx context.Context) (*domain.Submission, error) {
	w.mu.Lock()
	if w.submitting || w.state == domain.StateSubmitting {
		w.mu.Unlock()
		return nil, domain.ErrAlreadyInProgress
	}
	if w.state != domain.StateConfirming {
		w.mu.Unlock()
		return nil, domain.ErrInvalidState
	}
	if !w.draft.Complete() {
		w.mu.Unlock()
		return nil, domain.ErrIncompleteSelection
	}
	sub := domain.NewSubmission(w.draft.RoomSize, w.draft.Names, time.Now())
	w.state = domain.StateSubmitting
	w.submitting = true
	w.mu.Unlock()

	err := w.gateway.PersistSubmission(ctx, sub)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		// Roll back to name selection; the draft is untouched and the
		// user can retry.
		w.state = domain.StateChoosingNames
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}

	// The remote store accepted the submission; it is the final arbiter.
	// A local underflow here only means our snapshot was stale.
	w.roster.MarkUsed(sub.Names)
	_ = w.ledger.Decrement(sub.RoomSize)
	w.log.Append(sub)
	w.state = domain.StateSuccess
	return sub, nil
}

func (w *workflow) StartNewSelection() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != domain.StateSuccess {
		return domain.ErrInvalidState
	}
	w.draft = domain.Draft{}
	w.state = domain.StateChoosingRoomSize
	return nil
}
