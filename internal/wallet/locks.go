package wallet

import "sync"

// lockTable hands out one mutex per account id so that operations touching
// the same account serialize while operations on disjoint accounts proceed
// concurrently. Accounts are never deleted, so entries live for the process
// lifetime.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) get(id string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.locks[id]
	if !ok {
		m = &sync.Mutex{}
		t.locks[id] = m
	}
	return m
}

// acquire locks a single account and returns the release func.
func (t *lockTable) acquire(id string) func() {
	m := t.get(id)
	m.Lock()
	return m.Unlock
}

// acquirePair locks two accounts in ascending id order regardless of call
// order, which rules out circular wait between opposing transfers.
func (t *lockTable) acquirePair(a, b string) func() {
	if a == b {
		return t.acquire(a)
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	m1, m2 := t.get(first), t.get(second)
	m1.Lock()
	m2.Lock()
	return func() {
		m2.Unlock()
		m1.Unlock()
	}
}
