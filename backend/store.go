package backend

import (
	"Storefront/models"
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Store persists the inventory and the cart served by the backend.
type Store interface {
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	SeedInventory(ctx context.Context, items []models.InventoryItem) error
	ListCart(ctx context.Context) ([]models.CartItem, error)
	// UpsertCartItem stores item, replacing the quantity of an existing line.
	UpsertCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error)
	UpdateCartQuantity(ctx context.Context, id, quantity int) (models.CartItem, error)
	DeleteCartItem(ctx context.Context, id int) (models.CartItem, error)
	ClearCart(ctx context.Context) error
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	inventory map[int]models.InventoryItem
	cart      map[int]models.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		inventory: make(map[int]models.InventoryItem),
		cart:      make(map[int]models.CartItem),
	}
}

func (m *MemoryStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.InventoryItem, 0, len(m.inventory))
	for _, item := range m.inventory {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) SeedInventory(ctx context.Context, items []models.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range items {
		if _, ok := m.inventory[item.ID]; !ok {
			m.inventory[item.ID] = item
		}
	}
	return nil
}

func (m *MemoryStore) ListCart(ctx context.Context) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.CartItem, 0, len(m.cart))
	for _, item := range m.cart {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) UpsertCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart[item.ID] = item
	return item, nil
}

func (m *MemoryStore) UpdateCartQuantity(ctx context.Context, id, quantity int) (models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cart[id]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	item.Quantity = quantity
	m.cart[id] = item
	return item, nil
}

func (m *MemoryStore) DeleteCartItem(ctx context.Context, id int) (models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cart[id]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	delete(m.cart, id)
	return item, nil
}

func (m *MemoryStore) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = make(map[int]models.CartItem)
	return nil
}
