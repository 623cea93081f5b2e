package cart

import (
	"context"
	"encoding/json"
	"log"
	"slices"

	"cupcakery/models"
)

// Key is the persistence key holding the serialized cart.
const Key = "cart"

// MaxLines caps the number of units one cart can hold. Writes past it are
// truncated.
const MaxLines = 500

// Store is the ordered multiset of purchased lines for one visitor.
// It is loaded on every request and is not safe for concurrent use.
type Store struct {
	kv    Persistence
	lines []models.CartLine
}

func NewStore(kv Persistence) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory lines with the persisted ones. A missing or
// unreadable value is an empty cart.
func (s *Store) Load(ctx context.Context) []models.CartLine {
	s.lines = nil

	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		log.Printf("cart load error: %v", err)
		return s.Lines()
	}
	if !ok || raw == "" {
		return s.Lines()
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Printf("cart: discarding unreadable stored value: %v", err)
		return s.Lines()
	}
	for _, l := range lines {
		if l.ID == "" {
			continue
		}
		if len(s.lines) == MaxLines {
			log.Printf("cart: stored value exceeds %d lines, truncating", MaxLines)
			break
		}
		s.lines = append(s.lines, l)
	}
	return s.Lines()
}

// Save overwrites the persisted cart with lines, keeping at most MaxLines.
func (s *Store) Save(ctx context.Context, lines []models.CartLine) {
	s.lines = slices.Clone(lines[:min(len(lines), MaxLines)])
	s.persist(ctx)
}

// AddOne appends a single unit of item.
func (s *Store) AddOne(ctx context.Context, item models.MenuItem) {
	s.Add(ctx, item, 1)
}

// Add appends n units of item with a single write, stopping at MaxLines.
// It reports how many units were added; n < 1 or a full cart adds none.
func (s *Store) Add(ctx context.Context, item models.MenuItem, n int) int {
	n = min(n, MaxLines-len(s.lines))
	if n < 1 {
		return 0
	}
	line := models.NewCartLine(item)
	for i := 0; i < n; i++ {
		s.lines = append(s.lines, line)
	}
	s.persist(ctx)
	return n
}

// RemoveOne drops the first line with the given id, keeping the order of
// the rest. Unknown ids are ignored.
func (s *Store) RemoveOne(ctx context.Context, id string) {
	idx := slices.IndexFunc(s.lines, func(l models.CartLine) bool { return l.ID == id })
	if idx == -1 {
		return
	}
	s.lines = slices.Delete(slices.Clone(s.lines), idx, idx+1)
	s.persist(ctx)
}

// Clear empties the cart and deletes the persisted value.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	if err := s.kv.Remove(ctx, Key); err != nil {
		log.Printf("cart clear error: %v", err)
	}
}

// Lines returns a copy of the current lines, never nil.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	return len(s.lines)
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.Lines())
	if err != nil {
		log.Printf("cart encode error: %v", err)
		return
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		log.Printf("cart save error: %v", err)
	}
}
