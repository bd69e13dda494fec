package fabric

import (
	"sync"

	"github.com/renegade-fi/mpc-stark/buffer"
)

// resultStore holds completed results. The executor is its sole writer;
// handles read the write-once slots under a single read-write lock that
// guards the whole buffer.
type resultStore struct {
	mu  sync.RWMutex
	buf *buffer.Buffer[ResultValue]
}

func newResultStore(sizeHint int) *resultStore {
	return &resultStore{buf: buffer.New[ResultValue](sizeHint)}
}

// get performs a non-blocking read of the slot at id.
func (s *resultStore) get(id ResultId) (ResultValue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Get(uint64(id))
}

// insert writes value into the slot at id exactly once. It reports whether
// the slot already held a value (a duplicate-insert protocol violation).
func (s *resultStore) insert(id ResultId, value ResultValue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, had := s.buf.Insert(uint64(id), value)
	return had
}
