package orchestrator

import (
	"context"
	"sync"
)

// caseLocks serializes work per case id. Locks for different cases never
// contend, and idle entries are dropped.
type caseLocks struct {
	mu      sync.Mutex
	entries map[string]*caseLockEntry
}

type caseLockEntry struct {
	sem  chan struct{}
	refs int
}

func newCaseLocks() *caseLocks {
	return &caseLocks{entries: make(map[string]*caseLockEntry)}
}

// Lock blocks until the case is free or ctx ends.
func (l *caseLocks) Lock(ctx context.Context, caseID string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[caseID]
	if !ok {
		entry = &caseLockEntry{sem: make(chan struct{}, 1)}
		l.entries[caseID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(caseID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(caseID, entry)
		})
	}, nil
}

func (l *caseLocks) release(caseID string, entry *caseLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, caseID)
	}
}

func (l *caseLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
