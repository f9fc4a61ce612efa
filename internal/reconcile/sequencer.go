package reconcile

import "sync"

// Token identifies one request for a collection.
type Token uint64

// Sequencer hands out monotonically increasing tokens for requests of one
// collection and discards responses that were superseded.
//
// A response is superseded when a response for a newer request has already
// been accepted. It is safe for concurrent use.
type Sequencer struct {
	mu       sync.Mutex
	issued   Token
	accepted Token
}

// Next returns the token for a new request.
func (s *Sequencer) Next() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	return s.issued
}

// Accept reports if the response for the token may be applied. Accepting a
// token makes all older tokens stale.
func (s *Sequencer) Accept(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t <= s.accepted {
		return false
	}

	s.accepted = t
	return true
}

// Latest returns the newest token that was accepted, 0 if none.
func (s *Sequencer) Latest() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accepted
}
