// Package state holds one session's inventory and cart and notifies
// observers whenever either collection changes.
package state

import (
	"Storefront/models"
	"sync"
)

type State struct {
	mu        sync.Mutex
	inventory []models.InventoryItem
	cart      []models.CartItem
	observers map[int]func()
	nextID    int
}

func New() *State {
	return &State{
		inventory: []models.InventoryItem{},
		cart:      []models.CartItem{},
		observers: make(map[int]func()),
	}
}

// Subscribe registers cb to run after every change. The returned function
// removes it again.
func (s *State) Subscribe(cb func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Inventory returns a copy of the current inventory.
func (s *State) Inventory() []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InventoryItem(nil), s.inventory...)
}

// Cart returns a copy of the current cart.
func (s *State) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...)
}

func (s *State) SetInventory(inventory []models.InventoryItem) {
	s.Update(func(inv *[]models.InventoryItem, _ *[]models.CartItem) {
		*inv = append([]models.InventoryItem(nil), inventory...)
	})
}

func (s *State) SetCart(cart []models.CartItem) {
	s.Update(func(_ *[]models.InventoryItem, c *[]models.CartItem) {
		*c = append([]models.CartItem(nil), cart...)
	})
}

// Update applies fn to both collections under the lock and then notifies
// every observer exactly once.
func (s *State) Update(fn func(inventory *[]models.InventoryItem, cart *[]models.CartItem)) {
	s.mu.Lock()
	inventory := append([]models.InventoryItem(nil), s.inventory...)
	cart := append([]models.CartItem(nil), s.cart...)
	fn(&inventory, &cart)
	if inventory == nil {
		inventory = []models.InventoryItem{}
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	s.inventory = inventory
	s.cart = cart

	observers := make([]func(), 0, len(s.observers))
	for id := 0; id < s.nextID; id++ {
		if cb, ok := s.observers[id]; ok {
			observers = append(observers, cb)
		}
	}
	s.mu.Unlock()

	for _, cb := range observers {
		cb()
	}
}

// SetQuantity changes the selected quantity of one inventory item without
// notifying observers. It reports false when id is unknown.
func (s *State) SetQuantity(id int, quantity func(current int) int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.inventory {
		if s.inventory[i].ID == id {
			s.inventory[i].Quantity = quantity(s.inventory[i].Quantity)
			return s.inventory[i].Quantity, true
		}
	}
	return 0, false
}

func (s *State) FindInventory(id int) (models.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FindInventory(s.inventory, id)
}

func (s *State) FindCart(id int) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FindCart(s.cart, id)
}

func FindInventory(items []models.InventoryItem, id int) (models.InventoryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}

func FindCart(items []models.CartItem, id int) (models.CartItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.CartItem{}, false
}
