package session

import "sync"

type entry struct {
	mu   sync.Mutex
	sess Session
}

// Store is an in-memory session store keyed by identity. At most one session
// exists per identity; it is created on first state set and removed exactly
// once on a terminal transition.
type Store struct {
	mu      sync.Mutex
	entries map[Identity]*entry
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[Identity]*entry)}
}

func (s *Store) lookup(id Identity, create bool) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok && create {
		e = &entry{}
		s.entries[id] = e
	}
	return e
}

// Get returns a copy of the identity's session and whether one exists.
func (s *Store) Get(id Identity) (Session, bool) {
	e := s.lookup(id, false)
	if e == nil {
		return Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess, true
}

// Active reports whether the identity has an in-progress flow.
func (s *Store) Active(id Identity) bool {
	sess, ok := s.Get(id)
	return ok && sess.State != StateIdle
}

// SetState moves the identity to the given state, creating the session if it
// does not exist yet.
func (s *Store) SetState(id Identity, st State) {
	s.Mutate(id, func(sess *Session) { sess.State = st })
}

// Mutate runs fn with exclusive access to the identity's session, creating it
// if absent. Mutations for the same identity are serialized; different
// identities proceed independently.
func (s *Store) Mutate(id Identity, fn func(*Session)) {
	e := s.lookup(id, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.sess)
}

// Clear removes the identity's session entirely.
func (s *Store) Clear(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports how many sessions currently exist.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
