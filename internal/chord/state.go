package chord

import "sync"

// state is the node's mutable record (spec §3): successor, predecessor, and
// the finger table, guarded by a single RWMutex. Every accessor below reads
// or writes a whole Peer value at once, never a bare id or address field, so
// a reader can never observe a torn (id, address) pair (spec §5).
//
// Holding this lock across an outbound peer call is forbidden throughout
// this package: every remote call is made on a Peer snapshot taken under
// the lock and released before the call, per spec §5.
type state struct {
	mu sync.RWMutex

	self        Peer
	successor   Peer
	predecessor Peer
	finger      []Peer // m entries
	nextFinger  int
	shutdown    bool
}

func newState(self Peer, m int) *state {
	return &state{
		self:        self,
		successor:   Empty(),
		predecessor: Empty(),
		finger:      make([]Peer, m),
	}
}

func (s *state) Self() Peer {
	// self is immutable after construction; no lock needed.
	return s.self
}

func (s *state) Successor() Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.successor
}

func (s *state) setSuccessor(p Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successor = p
}

func (s *state) Predecessor() Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predecessor
}

func (s *state) setPredecessor(p Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predecessor = p
}

// Finger returns finger table entry i. Callers must pass 0 <= i < m.
func (s *state) Finger(i int) Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finger[i]
}

func (s *state) setFinger(i int, p Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finger[i] = p
}

// Fingers returns a snapshot of the whole finger table, for inspection.
func (s *state) Fingers() []Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Peer, len(s.finger))
	copy(out, s.finger)
	return out
}

func (s *state) nextFingerIndex(m int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextFinger >= m {
		s.nextFinger = 0
	}
	i := s.nextFinger
	s.nextFinger++
	return i
}

func (s *state) Shutdown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shutdown
}

func (s *state) setShutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
}

// snapshot is an internal convenience for routing/maintenance code that needs
// several fields read atomically with respect to each other (not just each
// field individually).
type snapshot struct {
	self        Peer
	successor   Peer
	predecessor Peer
	finger      []Peer
}

func (s *state) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	finger := make([]Peer, len(s.finger))
	copy(finger, s.finger)
	return snapshot{
		self:        s.self,
		successor:   s.successor,
		predecessor: s.predecessor,
		finger:      finger,
	}
}
