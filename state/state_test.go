package state

import (
	"Storefront/models"
	"testing"
)

func TestNew_IsEmpty(t *testing.T) {
	s := New()

	if len(s.Inventory()) != 0 || len(s.Cart()) != 0 {
		t.Error("expected empty collections")
	}
}

func TestSetters_WithoutObserver(t *testing.T) {
	s := New()

	s.SetInventory([]models.InventoryItem{{ID: 1, Content: "Apple"}})
	s.SetCart([]models.CartItem{{ID: 1, Content: "Apple", Quantity: 2}})

	if len(s.Inventory()) != 1 || len(s.Cart()) != 1 {
		t.Error("expected setters to store collections")
	}
}

func TestSetters_NotifyEachObserverOnce(t *testing.T) {
	s := New()
	var first, second int
	s.Subscribe(func() { first++ })
	s.Subscribe(func() { second++ })

	s.SetInventory([]models.InventoryItem{{ID: 1}})
	s.SetCart(nil)

	if first != 2 || second != 2 {
		t.Errorf("expected 2 notifications each, got %d and %d", first, second)
	}
}

func TestUpdate_NotifiesOnce(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe(func() {
		calls++
		if len(s.Inventory()) != 1 || len(s.Cart()) != 1 {
			t.Error("observer saw partial update")
		}
	})

	s.Update(func(inv *[]models.InventoryItem, cart *[]models.CartItem) {
		*inv = append(*inv, models.InventoryItem{ID: 1})
		*cart = append(*cart, models.CartItem{ID: 1})
	})

	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.SetCart(nil)
	unsubscribe()
	s.SetCart(nil)

	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestGettersReturnCopies(t *testing.T) {
	s := New()
	s.SetInventory([]models.InventoryItem{{ID: 1, Quantity: 2}})

	inventory := s.Inventory()
	inventory[0].Quantity = 99

	if item, _ := s.FindInventory(1); item.Quantity != 2 {
		t.Errorf("expected stored quantity 2, got %d", item.Quantity)
	}
}

func TestSetInventory_CopiesInput(t *testing.T) {
	s := New()
	input := []models.InventoryItem{{ID: 1, Quantity: 0}}
	s.SetInventory(input)

	s.SetQuantity(1, func(int) int { return 5 })

	if input[0].Quantity != 0 {
		t.Error("expected caller slice to be untouched")
	}
}

func TestSetQuantity_DoesNotNotify(t *testing.T) {
	s := New()
	s.SetInventory([]models.InventoryItem{{ID: 4, Quantity: 1}})
	calls := 0
	s.Subscribe(func() { calls++ })

	quantity, ok := s.SetQuantity(4, func(current int) int { return current + 2 })
	if !ok || quantity != 3 {
		t.Errorf("expected quantity 3, got %d (found=%v)", quantity, ok)
	}
	if calls != 0 {
		t.Errorf("expected no notification, got %d", calls)
	}

	if _, ok := s.SetQuantity(5, func(int) int { return 1 }); ok {
		t.Error("expected unknown id to be reported")
	}
}

func TestFindCart(t *testing.T) {
	s := New()
	s.SetCart([]models.CartItem{{ID: 2, Content: "Pear", Quantity: 1}})

	if item, ok := s.FindCart(2); !ok || item.Content != "Pear" {
		t.Errorf("expected Pear, got %+v (found=%v)", item, ok)
	}
	if _, ok := s.FindCart(3); ok {
		t.Error("expected id 3 to be missing")
	}
}
