package backend

import (
	"Storefront/models"
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_SeedSkipsExisting(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.SeedInventory(ctx, []models.InventoryItem{{ID: 2, Content: "Banana"}, {ID: 1, Content: "Apple"}})
	_ = store.SeedInventory(ctx, []models.InventoryItem{{ID: 1, Content: "Changed"}})

	inventory, err := store.ListInventory(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inventory) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inventory))
	}
	if inventory[0].ID != 1 || inventory[0].Content != "Apple" {
		t.Errorf("expected Apple first, got %+v", inventory[0])
	}
}

func TestMemoryStore_CartLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.UpsertCartItem(ctx, models.CartItem{ID: 1, Content: "Apple", Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.UpsertCartItem(ctx, models.CartItem{ID: 1, Content: "Apple", Quantity: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, _ := store.ListCart(ctx)
	if len(cart) != 1 || cart[0].Quantity != 5 {
		t.Fatalf("expected one Apple x5, got %+v", cart)
	}

	updated, err := store.UpdateCartQuantity(ctx, 1, 7)
	if err != nil || updated.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %+v (%v)", updated, err)
	}

	deleted, err := store.DeleteCartItem(ctx, 1)
	if err != nil || deleted.ID != 1 {
		t.Fatalf("expected deleted Apple, got %+v (%v)", deleted, err)
	}

	if _, err := store.DeleteCartItem(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.UpdateCartQuantity(ctx, 9, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ClearCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_, _ = store.UpsertCartItem(ctx, models.CartItem{ID: 1, Quantity: 1})
	_, _ = store.UpsertCartItem(ctx, models.CartItem{ID: 2, Quantity: 1})

	if err := store.ClearCart(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, _ := store.ListCart(ctx)
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %+v", cart)
	}
}
