package identity

import "sync"

// listener is a registered login-state subscriber. The id preserves
// registration order and makes cancellation idempotent.
type listener struct {
	id int64
	fn func(loggedIn bool)
}

// Store is the authoritative in-memory record of the current identity.
//
// It holds at most one Identity at a time and broadcasts login-state
// transitions to subscribers with replay-latest semantics: a subscriber
// attaching at any point immediately observes the current value, then every
// later transition, in registration order. The zero state is logged out.
//
// LogIn and LogOut are the only writer paths. All methods are safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	current   *Identity
	listeners []listener
	nextID    int64
}

// NewStore returns a Store in the logged-out state.
func NewStore() *Store {
	return &Store{}
}

// LogIn replaces any existing identity unconditionally and broadcasts true.
// Logging in over an existing identity is a single atomic transition; there
// is no intermediate logged-out emission.
func (s *Store) LogIn(ident Identity) {
	s.mu.Lock()
	cp := ident
	s.current = &cp
	targets := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range targets {
		l.fn(true)
	}
}

// LogOut clears the identity and broadcasts false. It is idempotent: calling
// it while already logged out leaves state unchanged but still emits false.
func (s *Store) LogOut() {
	s.mu.Lock()
	s.current = nil
	targets := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range targets {
		l.fn(false)
	}
}

// Current returns a snapshot of the current identity. The second return value
// is false when no identity is logged in.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// LoggedIn reports whether an identity is currently logged in.
func (s *Store) LoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// Subscribe registers fn for login-state notifications and returns a cancel
// function. fn is invoked synchronously with the current value before
// Subscribe returns, and again on every subsequent LogIn/LogOut, in
// subscription order. Cancel is idempotent.
//
// fn must not call back into the Store's write methods; reads are fine.
func (s *Store) Subscribe(fn func(loggedIn bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	loggedIn := s.current != nil
	s.mu.Unlock()

	fn(loggedIn)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshotListeners copies the listener list so emission happens outside the
// lock. Callers must hold mu.
func (s *Store) snapshotListeners() []listener {
	targets := make([]listener, len(s.listeners))
	copy(targets, s.listeners)
	return targets
}
