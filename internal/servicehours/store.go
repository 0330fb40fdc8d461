package servicehours

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store persists service-hour records. Implementations must allocate IDs and
// insert atomically.
type Store interface {
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, n NewRecord) (Record, error)
	Update(ctx context.Context, id int64, p Patch) (Record, error)
	Delete(ctx context.Context, id int64) error // no-op when absent
	Summary(ctx context.Context, userID int64) (Summary, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Record
}

func NewMemoryStore() Store {
	return &memoryStore{nextID: 1, records: map[int64]Record{}}
}

func (m *memoryStore) ListByUser(_ context.Context, userID int64) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(userID), nil
}

func (m *memoryStore) listLocked(userID int64) []Record {
	out := []Record{}
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryStore) Get(_ context.Context, id int64) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memoryStore) Create(_ context.Context, n NewRecord) (Record, error) {
	if err := n.Validate(); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := Record{
		ID:              m.nextID,
		UserID:          n.UserID,
		Organization:    n.Organization,
		Description:     n.Description,
		Hours:           n.Hours,
		Date:            n.Date.UTC().Truncate(time.Second),
		SupervisorName:  n.SupervisorName,
		SupervisorEmail: n.SupervisorEmail,
		SupervisorPhone: n.SupervisorPhone,
	}
	m.nextID++
	m.records[r.ID] = r
	return r, nil
}

func (m *memoryStore) Update(_ context.Context, id int64, p Patch) (Record, error) {
	if err := p.Validate(); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	r = r.apply(p)
	m.records[id] = r
	return r, nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memoryStore) Summary(_ context.Context, userID int64) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return summarize(userID, m.listLocked(userID)), nil
}
