package posting

import (
	"sort"
	"sync"
)

// lockTable serializes postings per project: transactions touching the
// same project take turns while disjoint projects proceed in parallel.
// Lines without a project contend on the reserved "" slot.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) get(code string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[code]
	if !ok {
		l = &sync.Mutex{}
		t.locks[code] = l
	}
	return l
}

// acquire locks every project code and returns a release func.
// Codes are deduplicated and locked in sorted order so two
// transactions with overlapping project sets cannot deadlock.
func (t *lockTable) acquire(codes []string) func() {
	seen := make(map[string]bool, len(codes))
	unique := make([]string, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, c := range unique {
		l := t.get(c)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
