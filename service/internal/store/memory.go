package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryJournal is a Journal held in process memory.
type MemoryJournal struct {
	mu      sync.Mutex
	matches map[uuid.UUID]MatchRecord
	entries map[uuid.UUID][]Entry
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		matches: make(map[uuid.UUID]MatchRecord),
		entries: make(map[uuid.UUID][]Entry),
	}
}

func (j *MemoryJournal) CreateMatch(_ context.Context, rec MatchRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, dup := j.matches[rec.ID]; dup {
		return fmt.Errorf("store: match %s already exists", rec.ID)
	}
	j.matches[rec.ID] = rec
	return nil
}

func (j *MemoryJournal) Match(_ context.Context, id uuid.UUID) (MatchRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, ok := j.matches[id]
	if !ok {
		return MatchRecord{}, ErrNotFound
	}
	return rec, nil
}

func (j *MemoryJournal) Append(_ context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.matches[e.MatchID]; !ok {
		return ErrNotFound
	}
	for _, old := range j.entries[e.MatchID] {
		if old.Seq == e.Seq {
			return fmt.Errorf("store: match %s seq %d already journaled", e.MatchID, e.Seq)
		}
	}
	j.entries[e.MatchID] = append(j.entries[e.MatchID], e)
	return nil
}

func (j *MemoryJournal) Entries(_ context.Context, id uuid.UUID) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.matches[id]; !ok {
		return nil, ErrNotFound
	}
	out := append([]Entry(nil), j.entries[id]...)
	sort.Slice(out, func(a, b int) bool { return out[a].Seq < out[b].Seq })
	return out, nil
}

type cached struct {
	snap    Snapshot
	expires time.Time
}

// MemoryCache is a Cache held in process memory. Entries expire after TTL;
// a zero TTL keeps them forever.
type MemoryCache struct {
	TTL time.Duration

	mu   sync.Mutex
	data map[uuid.UUID]cached
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{TTL: ttl, data: make(map[uuid.UUID]cached), now: time.Now}
}

func (c *MemoryCache) Put(_ context.Context, id uuid.UUID, s Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var exp time.Time
	if c.TTL > 0 {
		exp = c.now().Add(c.TTL)
	}
	c.data[id] = cached{snap: s, expires: exp}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, id uuid.UUID) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.data, id)
		return Snapshot{}, ErrNotFound
	}
	return e.snap, nil
}

func (c *MemoryCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
	return nil
}
