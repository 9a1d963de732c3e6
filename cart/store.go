// Package cart holds the pending order: an in-memory line list mirrored
// to durable local storage after every mutation, plus the checkout
// workflow that turns it into a submitted order.
package cart

import (
	"errors"
	"log"
	"sync"

	"sagra/localstore"
	"sagra/models"
)

// ErrCartLocked is returned by mutations while an order submission is in
// flight. The lock replaces the original silent-loss race: edits made
// between submit and confirmation are rejected instead of discarded.
var ErrCartLocked = errors.New("cart: locked during order submission")

type Store struct {
	mu     sync.Mutex
	items  []models.CartItem
	locked bool
	local  *localstore.Store
}

// NewStore hydrates the cart from durable storage. A missing, corrupt or
// non-array payload starts an empty cart; hydration never fails.
func NewStore(local *localstore.Store) *Store {
	s := &Store{local: local}
	var saved []models.CartItem
	if local.Get(localstore.KeyCart, &saved) {
		s.items = saved
	}
	return s
}

// persist mirrors the full line list to durable storage. Callers hold mu.
func (s *Store) persist() {
	if s.items == nil {
		s.items = []models.CartItem{}
	}
	if err := s.local.Put(localstore.KeyCart, s.items); err != nil {
		log.Println("cart persist error:", err)
	}
}

// AddItem increments the line for dish.ID or appends a new line with
// quantity 1, capturing price, name and image at this instant.
// Availability is the caller's concern, not checked here.
func (s *Store) AddItem(dish models.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrCartLocked
	}

	for i := range s.items {
		if s.items[i].ID == dish.ID {
			s.items[i].Quantity++
			s.persist()
			return nil
		}
	}
	s.items = append(s.items, models.CartItem{
		ID:       dish.ID,
		Name:     dish.Name,
		Price:    dish.Price,
		Quantity: 1,
		Image:    dish.Image,
	})
	s.persist()
	return nil
}

// RemoveItem deletes the line with the given id; absent ids are a no-op.
func (s *Store) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrCartLocked
	}
	s.removeLocked(id)
	return nil
}

func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.persist()
}

// UpdateQuantity sets the line's quantity to an absolute value. Zero or
// negative removes the line. No upper bound is enforced.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrCartLocked
	}
	if quantity <= 0 {
		s.removeLocked(id)
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist()
	return nil
}

// Clear empties the cart and overwrites the mirror with an empty list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrCartLocked
	}
	s.clearLocked()
	return nil
}

func (s *Store) clearLocked() {
	s.items = []models.CartItem{}
	s.persist()
}

// Items returns a copy of the current line list.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is recomputed on every read so it can never go stale.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// freeze rejects further mutations until release is called. It returns
// the submission snapshot taken under the same lock.
func (s *Store) freeze() ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return nil, ErrCartLocked
	}
	s.locked = true
	snapshot := make([]models.CartItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot, nil
}

// release unlocks the cart, clearing it first when the submission
// succeeded.
func (s *Store) release(clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
	if clear {
		s.clearLocked()
	}
}
