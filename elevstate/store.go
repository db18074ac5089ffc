// store.go
// Purpose: Holds the last snapshot the simulator produced. Writers replace the
// whole snapshot; readers only ever get deep copies.
package elevstate

import (
	"sync"
	"sync/atomic"

	"elevsim/common"
)

type Store struct {
	mu      sync.RWMutex
	state   *common.SimulationState
	applied uint64

	issued atomic.Uint64
}

func New() *Store { return &Store{} }

// Ticket reserves a sequence number for a request about to be sent. Take it
// before sending so that issue order, not arrival order, decides which
// response is newest.
func (s *Store) Ticket() uint64 {
	return s.issued.Add(1)
}

// Replace installs st if ticket is newer than the last installed ticket and
// reports whether it did. The store takes ownership of st.
func (s *Store) Replace(ticket uint64, st *common.SimulationState) bool {
	if st == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied {
		return false
	}
	s.state = st
	s.applied = ticket
	return true
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != nil
}

// Snapshot returns a deep copy of the current snapshot, or false before the
// first successful load.
func (s *Store) Snapshot() (*common.SimulationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, false
	}
	cp, err := common.DeepCopyState(s.state)
	if err != nil {
		return nil, false
	}
	return cp, true
}

// Applied returns the ticket of the installed snapshot (0 before first load).
func (s *Store) Applied() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}
