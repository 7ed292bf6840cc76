package domain

// NameEntry is a roster name with its current availability, as shown in
// the admin names tab.
// swagger:model NameEntry
type NameEntry struct {
	Name string `json:"name"`
	Used bool   `json:"used"`
}

// RosterStore holds the ordered roster and the set of names committed to
// active submissions. A used name that is no longer in the roster is
// inert. Implementations must be safe for concurrent use.
type RosterStore interface {
	IsUsed(name string) bool
	// Contains reports whether name is part of the roster.
	Contains(name string) bool
	MarkUsed(names []string)
	MarkFree(names []string)
	// ClearUsed empties the used set, leaving the roster untouched.
	ClearUsed()
	// ReplaceRoster swaps the roster sequence, leaving used names as-is.
	ReplaceRoster(names []string)
	// Replace swaps both roster and used set, for remote snapshot merges.
	Replace(roster, used []string)
	// Names returns the roster in order with per-name availability.
	Names() []NameEntry
	// AvailableCount returns how many roster names are not used.
	AvailableCount() int
}
