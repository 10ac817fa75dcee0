package cases

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used when no database is configured and
// by tests. The write lock covers every check-and-write, so per-sender
// admission stays atomic.
type MemoryStore struct {
	mu        sync.RWMutex
	cooldown  time.Duration
	nextID    int64
	records   map[int64]*Case
	lastImage map[string]time.Time
}

// NewMemoryStore constructs an empty MemoryStore with the given admission
// cooldown.
func NewMemoryStore(cooldown time.Duration) *MemoryStore {
	return &MemoryStore{
		cooldown:  cooldown,
		nextID:    1,
		records:   make(map[int64]*Case),
		lastImage: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Admit(_ context.Context, phone string, now time.Time) (bool, error) {
	phone = NormalizePhone(phone)
	m.mu.Lock()
	defer m.mu.Unlock()
	if last, ok := m.lastImage[phone]; ok && now.Sub(last) < m.cooldown {
		return false, nil
	}
	m.lastImage[phone] = now
	return true, nil
}

func (m *MemoryStore) Record(_ context.Context, c *Case) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	stored.ID = m.nextID
	stored.Phone = NormalizePhone(stored.Phone)
	stored.Timestamp = stored.Timestamp.UTC().Truncate(time.Second)
	m.nextID++
	m.records[stored.ID] = &stored
	c.ID = stored.ID
	return stored.ID, nil
}

func (m *MemoryStore) Escalate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Escalated = true
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (*Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Case, 0, len(m.records))
	needle := strings.ToLower(f.Phone)
	for _, rec := range m.records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Phone), needle) {
			continue
		}
		if f.EscalatedOnly && !rec.Escalated {
			continue
		}
		if !matchesConfidence(rec, f.MinConfidence) {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
