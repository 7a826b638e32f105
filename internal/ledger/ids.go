package ledger

import "sync"

// Sequence hands out strictly increasing uint64 identifiers starting
// at 1. Ids are never reused for the lifetime of the ledger.
type Sequence struct {
	mu   sync.Mutex
	last uint64
}

func (s *Sequence) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}
