package interrogation

import (
	"sync"

	"github.com/myrjola/interrogation-room/internal/models"
)

type turnKey struct {
	caseID string
	thread models.Thread
}

// keyedMutex serializes chat turns per (case, thread) pair. The suspect and
// assistant threads of the same case lock independently. Entries are dropped
// once the last holder releases so that the map doesn't grow with every case
// ever chatted on.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[turnKey]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the key is free and returns the release function.
func (k *keyedMutex) lock(key turnKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[turnKey]*lockEntry)
	}
	entry := k.locks[key]
	if entry == nil {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
