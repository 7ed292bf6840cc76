package memory

import (
	"fmt"
	"sort"
	"sync"

	"roomreserve/internal/domain"
)

type submissionLog struct {
	mu   sync.RWMutex
	subs []*domain.Submission
}

// NewSubmissionLog returns an empty in-memory SubmissionLog.
func NewSubmissionLog() domain.SubmissionLog {
	return &submissionLog{}
}

func (l *submissionLog) Append(sub *domain.Submission) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, sub)
}

func (l *submissionLog) Remove(id string) (*domain.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, sub := range l.subs {
		if sub.ID == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return sub, nil
		}
	}
	return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
}

func (l *submissionLog) Get(id string) (*domain.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, sub := range l.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
}

// List returns submissions newest-first. The sort is stable so equal
// timestamps keep their insertion order.
func (l *submissionLog) List() []*domain.Submission {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := append([]*domain.Submission(nil), l.subs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (l *submissionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs)
}

func (l *submissionLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = nil
}

func (l *submissionLog) Replace(subs []*domain.Submission) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append([]*domain.Submission(nil), subs...)
}
