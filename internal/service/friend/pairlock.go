package friend

import "sync"

// pairLock serialises compound relationship transitions per unordered
// user pair. AddFriend(A,B) racing AddFriend(B,A) must observe each
// other, or the reciprocal short-circuit duplicates friendship rows.
type pairLock struct {
	mu    sync.Mutex
	locks map[string]*pairEntry
}

type pairEntry struct {
	mu   sync.Mutex
	refs int
}

func newPairLock() *pairLock {
	return &pairLock{locks: make(map[string]*pairEntry)}
}

// pairKey is direction-independent so both orderings share one mutex.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Lock acquires the pair mutex and returns its unlock function. Entries
// are reference-counted and removed when the last holder releases.
func (p *pairLock) Lock(a, b string) func() {
	key := pairKey(a, b)

	p.mu.Lock()
	entry, ok := p.locks[key]
	if !ok {
		entry = &pairEntry{}
		p.locks[key] = entry
	}
	entry.refs++
	p.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		p.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}
