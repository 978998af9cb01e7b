package state

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rook-computer/cover/internal/config"
)

// Key identifies one rendered document.
type Key struct {
	Format      string
	Size        int
	Fingerprint string
}

func (k Key) String() string {
	return k.Format + "/" + strconv.Itoa(k.Size) + "/" + k.Fingerprint
}

// Entry is a rendered document. Body is shared between callers and must
// not be modified.
type Entry struct {
	Body        []byte
	ContentType string
}

// Stats counts cache traffic since the store was created.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// Store caches rendered covers. Renders are pure functions of their key,
// so an entry never goes stale; the oldest entry is evicted once the store
// holds MaxEntries.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]Entry
	order   []Key
	max     int
	stats   Stats

	group singleflight.Group
}

// NewStore returns a store holding at most maxEntries documents. A
// non-positive bound disables caching; concurrent identical renders are
// still collapsed.
func NewStore(maxEntries int) *Store {
	return &Store{entries: make(map[Key]Entry), max: maxEntries}
}

// Fingerprint hashes the effective configuration and overrides of a render.
func Fingerprint(cfg config.Config, o config.Overrides) (string, error) {
	data, err := config.EncodeJSON(struct {
		Config    config.Config    `json:"config"`
		Overrides config.Overrides `json:"overrides"`
	}{cfg, o})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the cached entry for key.
func (store *Store) Get(key Key) (Entry, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	e, ok := store.entries[key]
	return e, ok
}

// GetOrRender returns the cached entry for key, or runs render once for
// all concurrent callers asking for the same key and caches its result.
// hit reports whether the entry came from the cache.
func (store *Store) GetOrRender(key Key, render func() (Entry, error)) (entry Entry, hit bool, err error) {
	if e, ok := store.Get(key); ok {
		store.count(true)
		return e, true, nil
	}
	store.count(false)

	v, err, _ := store.group.Do(key.String(), func() (interface{}, error) {
		if e, ok := store.Get(key); ok {
			return e, nil
		}
		e, err := render()
		if err != nil {
			return Entry{}, err
		}
		store.put(key, e)
		return e, nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return v.(Entry), false, nil
}

// Snapshot returns the current counters.
func (store *Store) Snapshot() Stats {
	store.mu.RLock()
	defer store.mu.RUnlock()
	s := store.stats
	s.Entries = len(store.entries)
	return s
}

// Purge drops every entry and keeps the counters.
func (store *Store) Purge() {
	store.mu.Lock()
	store.entries = make(map[Key]Entry)
	store.order = nil
	store.mu.Unlock()
}

func (store *Store) count(hit bool) {
	store.mu.Lock()
	if hit {
		store.stats.Hits++
	} else {
		store.stats.Misses++
	}
	store.mu.Unlock()
}

func (store *Store) put(key Key, e Entry) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.max <= 0 {
		return
	}
	if _, ok := store.entries[key]; ok {
		return
	}
	for len(store.order) >= store.max {
		oldest := store.order[0]
		store.order = store.order[1:]
		delete(store.entries, oldest)
		store.stats.Evictions++
	}
	store.entries[key] = e
	store.order = append(store.order, key)
}
