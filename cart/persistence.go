package cart

import (
	"context"
	"sync"
)

// Persistence is the key/value string store a cart is written to.
type Persistence interface {
	// Get reports ok=false when the key holds no value.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryPersistence keeps values in process memory. Used by tests and by
// CART_BACKEND=memory for local runs.
type MemoryPersistence struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{values: make(map[string]string)}
}

func (m *MemoryPersistence) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryPersistence) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryPersistence) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type scoped struct {
	p      Persistence
	prefix string
}

// Scoped gives one visitor session its own key space, so that every visitor
// sees a private "cart" key.
func Scoped(p Persistence, sessionID string) Persistence {
	return &scoped{p: p, prefix: "session:" + sessionID + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.p.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.p.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.p.Remove(ctx, s.prefix+key)
}
