package llmcall

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of calls kept when no capacity is given.
const DefaultCapacity = 500

// Store keeps the most recent calls in memory, oldest evicted first.
type Store struct {
	mu       sync.RWMutex
	calls    []Call
	next     int
	full     bool
	capacity int
}

// NewStore creates a store holding up to capacity calls.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		calls:    make([]Call, capacity),
		capacity: capacity,
	}
}

// QueryFilter specifies filters for listing LLM calls.
type QueryFilter struct {
	SessionID string
	FormID    string
	PromptKey string
	Provider  string
	Model     string
	After     *time.Time
	Before    *time.Time
	Success   *bool
	Limit     int
	Offset    int
}

// Add stores a call, evicting the oldest one when full.
func (s *Store) Add(call Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[s.next] = call
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
}

// Len returns the number of stored calls.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return s.capacity
	}
	return s.next
}

// Get retrieves a single LLM call by ID. Returns nil if not found.
func (s *Store) Get(id string) *Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.newestFirst() {
		if c.ID == id {
			out := c
			return &out
		}
	}
	return nil
}

// List returns calls matching the filter, newest first, and the number of
// matches before Limit/Offset were applied.
func (s *Store) List(filter QueryFilter) ([]Call, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Call
	for _, c := range s.newestFirst() {
		if filter.matches(c) {
			matched = append(matched, c)
		}
	}
	total := len(matched)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []Call{}, total
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	if matched == nil {
		matched = []Call{}
	}
	return matched, total
}

// CountByPromptKey returns call counts grouped by prompt key.
func (s *Store) CountByPromptKey(formID string) map[string]int {
	calls, _ := s.List(QueryFilter{FormID: formID})
	counts := make(map[string]int)
	for _, c := range calls {
		counts[c.PromptKey]++
	}
	return counts
}

// newestFirst must be called with the lock held.
func (s *Store) newestFirst() []Call {
	n := s.next
	if s.full {
		n = s.capacity
	}
	out := make([]Call, 0, n)
	for i := 1; i <= n; i++ {
		idx := (s.next - i + s.capacity) % s.capacity
		out = append(out, s.calls[idx])
	}
	return out
}

func (f QueryFilter) matches(c Call) bool {
	if f.SessionID != "" && c.SessionID != f.SessionID {
		return false
	}
	if f.FormID != "" && c.FormID != f.FormID {
		return false
	}
	if f.PromptKey != "" && c.PromptKey != f.PromptKey {
		return false
	}
	if f.Provider != "" && c.Provider != f.Provider {
		return false
	}
	if f.Model != "" && c.Model != f.Model {
		return false
	}
	if f.Success != nil && c.Success != *f.Success {
		return false
	}
	if f.After != nil && !c.Timestamp.After(*f.After) {
		return false
	}
	if f.Before != nil && !c.Timestamp.Before(*f.Before) {
		return false
	}
	return true
}
