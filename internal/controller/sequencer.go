package controller

import "sync"

// sequencer orders responses for one display region.
type sequencer struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// begin reserves the next sequence number. Call it before sending the request.
func (s *sequencer) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// apply runs render if seq is newer than the last applied number and reports
// whether it did. render runs under the lock so regions see updates in
// sequence order.
func (s *sequencer) apply(seq uint64, render func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	render()
	return true
}
