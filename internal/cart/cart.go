package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
)

// Entry is one cart line: a menu item snapshot plus a quantity. Carts are
// session state only and are never persisted; checkout or session end
// destroys them.
type Entry struct {
	Item     menu.Item `json:"item"`
	Quantity int       `json:"quantity"`
}

func (e Entry) LineTotal() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Store holds one cart per session owner. Adding an item already in the cart
// accumulates its quantity instead of appending a duplicate entry.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Entry
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Entry)}
}

func (s *Store) Add(owner string, item menu.Item, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.carts[owner]
	for i := range entries {
		if entries[i].Item.ID == item.ID {
			entries[i].Quantity += quantity
			return
		}
	}
	s.carts[owner] = append(entries, Entry{Item: item, Quantity: quantity})
}

// Get returns a copy of the owner's cart in insertion order.
func (s *Store) Get(owner string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.carts[owner]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func (s *Store) Clear(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
}

func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}
	return total
}
