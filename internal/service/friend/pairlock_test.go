package friend

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPairLockDirectionIndependent(t *testing.T) {
	locks := newPairLock()

	unlock := locks.Lock("U1", "U2")

	acquired := make(chan struct{})
	go func() {
		// Reversed order must contend for the same mutex.
		defer close(acquired)
		u := locks.Lock("U2", "U1")
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("reversed pair acquired the lock while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("reversed pair never acquired the lock after release")
	}
}

func TestPairLockDistinctPairsDoNotContend(t *testing.T) {
	locks := newPairLock()

	unlock := locks.Lock("U1", "U2")
	defer unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		u := locks.Lock("U1", "U3")
		u()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated pair blocked on a held lock")
	}
}

func TestPairLockEntriesReleased(t *testing.T) {
	locks := newPairLock()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("U1", "U2")
			unlock()
		}()
	}
	wg.Wait()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "entries must be reclaimed once the last holder releases")
}
