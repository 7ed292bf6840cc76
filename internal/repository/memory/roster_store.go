package memory

import (
	"sync"

	"roomreserve/internal/domain"
)

type rosterStore struct {
	mu     sync.RWMutex
	roster []string
	used   map[string]struct{}
}

// NewRosterStore returns an in-memory RosterStore with the given roster
// order and used-name set.
func NewRosterStore(roster, used []string) domain.RosterStore {
	s := &rosterStore{}
	s.Replace(roster, used)
	return s
}

func (s *rosterStore) IsUsed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.used[name]
	return ok
}

func (s *rosterStore) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.roster {
		if n == name {
			return true
		}
	}
	return false
}

func (s *rosterStore) MarkUsed(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		s.used[n] = struct{}{}
	}
}

func (s *rosterStore) MarkFree(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		delete(s.used, n)
	}
}

func (s *rosterStore) ClearUsed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = make(map[string]struct{})
}

func (s *rosterStore) ReplaceRoster(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = append([]string(nil), names...)
}

func (s *rosterStore) Replace(roster, used []string) {
	usedSet := make(map[string]struct{}, len(used))
	for _, n := range used {
		usedSet[n] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = append([]string(nil), roster...)
	s.used = usedSet
}

func (s *rosterStore) Names() []domain.NameEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.NameEntry, 0, len(s.roster))
	for _, n := range s.roster {
		_, used := s.used[n]
		entries = append(entries, domain.NameEntry{Name: n, Used: used})
	}
	return entries
}

func (s *rosterStore) AvailableCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.roster {
		if _, used := s.used[n]; !used {
			count++
		}
	}
	return count
}
