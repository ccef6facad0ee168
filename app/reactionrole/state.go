package reactionrole

import "sync"

// State is the single process-wide slot holding the current binding. Many
// concurrent readers (the matcher, one per reaction event) share it with the
// single writer path (the creator). The writer holds the lock only for the
// in-memory replacement, never across network or file operations.
type State struct {
	mu      sync.RWMutex
	binding *Binding
}

// NewState creates an empty State.
func NewState() *State {
	return &State{}
}

// Get returns the current binding, if any. Readers observe either the fully
// old or fully new value, never a partial one.
func (s *State) Get() (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.binding == nil {
		return Binding{}, false
	}
	return *s.binding, true
}

// Replace installs a new binding, discarding the previous one outright.
func (s *State) Replace(binding Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binding = &binding
}

// Seed loads the persisted binding into the state at startup. Absence is the
// normal "feature not yet configured" case.
func (s *State) Seed(store Store) {
	if binding, ok := store.Load(); ok {
		s.Replace(binding)
	}
}
