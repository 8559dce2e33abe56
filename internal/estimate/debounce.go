package estimate

import (
	"sync"
	"time"
)

// writeScheduler coalesces rapid edits to the same row into one store
// write. Each key holds at most one pending write; scheduling again
// replaces it and restarts the delay.
type writeScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingWrite
}

type pendingWrite struct {
	timer *time.Timer
	fn    func()
}

func newWriteScheduler(delay time.Duration) *writeScheduler {
	return &writeScheduler{
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// Schedule queues fn to run after the delay, replacing any write already
// pending for key.
func (s *writeScheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingWrite{fn: fn}
	p.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.pending[key] == p {
			delete(s.pending, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.pending[key] = p
}

// Cancel drops any pending write for key without running it.
func (s *writeScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

// Flush runs every pending write immediately, synchronously, in
// unspecified order. Used on exit so no edit is lost to an unexpired timer.
func (s *writeScheduler) Flush() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.pending))
	for key, p := range s.pending {
		if p.timer.Stop() {
			fns = append(fns, p.fn)
		}
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
