package domain

import "errors"

// Sentinel errors for the reservation core. Controllers map these to HTTP
// status codes with errors.Is; services wrap them with fmt.Errorf("...: %w").
var (
	// ErrCapacityExceeded is returned when a room size has no rooms left.
	ErrCapacityExceeded = errors.New("no rooms available for this size")

	// ErrInsufficientRoster is returned when fewer free names remain than
	// the requested room size.
	ErrInsufficientRoster = errors.New("not enough people available")

	// ErrNameUnavailable is returned when a name is already committed to an
	// active submission.
	ErrNameUnavailable = errors.New("name already assigned to a room")

	// ErrSelectionFull is returned when the draft already holds as many
	// names as the chosen room size.
	ErrSelectionFull = errors.New("selection already full")

	// ErrIncompleteSelection is returned when confirmation is requested
	// before the draft is exactly full.
	ErrIncompleteSelection = errors.New("selection incomplete")

	// ErrSubmissionFailed is returned when the remote store rejects or
	// fails to persist a submission. The draft is retained.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrAlreadyInProgress is returned on re-entrant submit while a remote
	// call is outstanding.
	ErrAlreadyInProgress = errors.New("submission already in progress")

	// ErrTransport wraps any remote gateway failure. The core never
	// inspects the cause beyond this sentinel.
	ErrTransport = errors.New("remote store unreachable")

	// ErrAuthenticationFailed is returned on a wrong admin passphrase.
	ErrAuthenticationFailed = errors.New("invalid admin passphrase")

	// ErrUnderflow guards the capacity ledger against decrementing below
	// zero. Workflow checks make it unreachable in correct usage.
	ErrUnderflow = errors.New("capacity underflow")

	// ErrInvalidState is returned when a workflow operation is called in a
	// state that does not permit it.
	ErrInvalidState = errors.New("operation not allowed in current state")

	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
