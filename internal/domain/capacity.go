package domain

// CapacityLedger tracks remaining bookable rooms per room size. All
// mutations happen after the corresponding remote call succeeded, so no
// rollback support is needed. Implementations must be safe for concurrent
// use.
type CapacityLedger interface {
	// Get returns the remaining count for size, or ErrInvalidInput if the
	// ledger does not know the size.
	Get(size RoomSize) (int, error)
	// Decrement takes one room of the given size. Returns ErrUnderflow if
	// none remain; workflow guards should make that unreachable.
	Decrement(size RoomSize) error
	Increment(size RoomSize) error
	// Set overwrites the remaining count for a known size.
	Set(size RoomSize, remaining int) error
	// ReplaceAll swaps the whole mapping, defining the known sizes.
	ReplaceAll(limits map[RoomSize]int)
	// All returns a copy of the current mapping.
	All() map[RoomSize]int
}
