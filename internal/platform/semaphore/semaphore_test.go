package semaphore

import (
	"testing"
	"time"
)

func TestNewNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative initial count")
		}
	}()
	New(-1)
}

func TestWaitConsumesInitialCount(t *testing.T) {
	s := New(2)
	s.Wait()
	s.Wait()
	if got := s.Value(); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
}

func TestWaitBlocksUntilRelease(t *testing.T) {
	s := New(0)
	done := make(chan struct{})

	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("wait returned before release")
	case <-time.After(20 * time.Millisecond):
	}

	s.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after release")
	}
}

func TestReleaseNWakesAllWaiters(t *testing.T) {
	const waiters = 5
	s := New(0)
	done := make(chan struct{}, waiters)

	for i := 0; i < waiters; i++ {
		go func() {
			s.Wait()
			done <- struct{}{}
		}()
	}

	s.ReleaseN(waiters)

	for i := 0; i < waiters; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("waiter %d did not wake", i)
		}
	}
	if got := s.Value(); got != 0 {
		t.Fatalf("expected count 0 after all waiters, got %d", got)
	}
}

func TestReleaseNZeroIsNoop(t *testing.T) {
	s := New(1)
	s.ReleaseN(0)
	if got := s.Value(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
}

func TestWaitN(t *testing.T) {
	s := New(3)
	s.WaitN(3)
	if got := s.Value(); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
}

func TestTryWait(t *testing.T) {
	s := New(1)
	if !s.TryWait() {
		t.Fatal("expected first try-wait to succeed")
	}
	if s.TryWait() {
		t.Fatal("expected second try-wait to fail")
	}
	s.Release()
	if !s.TryWait() {
		t.Fatal("expected try-wait to succeed after release")
	}
}
