package memory

import (
	"fmt"
	"sync"

	"roomreserve/internal/domain"
)

type capacityLedger struct {
	mu     sync.RWMutex
	limits map[domain.RoomSize]int
}

// NewCapacityLedger returns an in-memory CapacityLedger seeded with the
// given limits. The keys define the known room sizes until the next
// ReplaceAll.
func NewCapacityLedger(limits map[domain.RoomSize]int) domain.CapacityLedger {
	l := &capacityLedger{}
	l.ReplaceAll(limits)
	return l
}

func (l *capacityLedger) Get(size domain.RoomSize) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	remaining, ok := l.limits[size]
	if !ok {
		return 0, fmt.Errorf("%w: unknown room size %d", domain.ErrInvalidInput, size)
	}
	return remaining, nil
}

func (l *capacityLedger) Decrement(size domain.RoomSize) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	remaining, ok := l.limits[size]
	if !ok {
		return fmt.Errorf("%w: unknown room size %d", domain.ErrInvalidInput, size)
	}
	if remaining <= 0 {
		return fmt.Errorf("%w: room size %d", domain.ErrUnderflow, size)
	}
	l.limits[size] = remaining - 1
	return nil
}

func (l *capacityLedger) Increment(size domain.RoomSize) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	remaining, ok := l.limits[size]
	if !ok {
		return fmt.Errorf("%w: unknown room size %d", domain.ErrInvalidInput, size)
	}
	l.limits[size] = remaining + 1
	return nil
}

func (l *capacityLedger) Set(size domain.RoomSize, remaining int) error {
	if remaining < 0 {
		return fmt.Errorf("%w: negative capacity", domain.ErrInvalidInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.limits[size]; !ok {
		return fmt.Errorf("%w: unknown room size %d", domain.ErrInvalidInput, size)
	}
	l.limits[size] = remaining
	return nil
}

func (l *capacityLedger) ReplaceAll(limits map[domain.RoomSize]int) {
	fresh := make(map[domain.RoomSize]int, len(limits))
	for size, remaining := range limits {
		if remaining < 0 {
			remaining = 0
		}
		fresh[size] = remaining
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits = fresh
}

func (l *capacityLedger) All() map[domain.RoomSize]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[domain.RoomSize]int, len(l.limits))
	for size, remaining := range l.limits {
		out[size] = remaining
	}
	return out
}
