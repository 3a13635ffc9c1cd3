// Package semaphore provides a counting signal primitive.
//
// A Semaphore holds a non-negative count. Release increments the count and
// Wait blocks until the count is positive, then decrements it. Unlike a
// buffered channel, the count has no upper bound, so the release side never
// blocks regardless of how far it runs ahead of the waiters.
package semaphore

import "sync"

// Semaphore is a counting signal backed by a condition variable.
//
// The zero value is not usable; construct semaphores with New.
type Semaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

// New creates a semaphore with the given initial count.
// It panics if initial is negative.
func New(initial int) *Semaphore {
	if initial < 0 {
		panic("semaphore: negative initial count")
	}
	s := &Semaphore{count: initial}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Wait blocks until the count is positive, then decrements it.
//
// Waits are indefinite: if no Release ever arrives, Wait blocks forever.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// WaitN waits for n units one at a time. It panics if n is negative.
func (s *Semaphore) WaitN(n int) {
	if n < 0 {
		panic("semaphore: negative wait count")
	}
	for i := 0; i < n; i++ {
		s.Wait()
	}
}

// TryWait decrements the count without blocking. It reports whether a unit
// was consumed.
func (s *Semaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Release increments the count and wakes one waiter.
func (s *Semaphore) Release() {
	s.mu.Lock()
	s.count++
	s.cond.Signal()
	s.mu.Unlock()
}

// ReleaseN increments the count by n and wakes up to n waiters.
// It panics if n is negative.
func (s *Semaphore) ReleaseN(n int) {
	if n < 0 {
		panic("semaphore: negative release count")
	}
	if n == 0 {
		return
	}
	s.mu.Lock()
	s.count += n
	if n == 1 {
		s.cond.Signal()
	} else {
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// Value returns the current count.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
