package view

import (
	"Storefront/models"
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func page(t *testing.T, v *View) string {
	t.Helper()
	var sb strings.Builder
	if err := v.WritePage(&sb); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return sb.String()
}

func TestRenderInventory_Rows(t *testing.T) {
	v := New()
	v.RenderInventory([]models.InventoryItem{
		{ID: 1, Content: "Apple", Quantity: 0},
		{ID: 2, Content: "Banana", Quantity: 2},
	})

	out := page(t, v)

	for _, want := range []string{
		`<span>Apple</span>`,
		`<span id="quantity-1">0</span>`,
		`<span id="quantity-2">2</span>`,
		`action="/inventory/2/amount"`,
		`action="/inventory/1/cart"`,
		`name="delta" value="-1"`,
		`name="delta" value="1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestRenderCart_Rows(t *testing.T) {
	v := New()
	v.RenderCart([]models.CartItem{{ID: 3, Content: "Kiwi", Quantity: 4}})

	out := page(t, v)

	if !strings.Contains(out, "Kiwi - 4") {
		t.Error("expected cart entry")
	}
	if !strings.Contains(out, `action="/cart/3/delete"`) {
		t.Error("expected delete control")
	}
	if strings.Count(out, `class="checkout-btn"`) != 1 {
		t.Error("expected exactly one checkout control")
	}
}

func TestRenderCart_ReplacesContainer(t *testing.T) {
	v := New()
	v.RenderCart([]models.CartItem{{ID: 3, Content: "Kiwi", Quantity: 4}})
	v.RenderCart(nil)

	if strings.Contains(page(t, v), "Kiwi") {
		t.Error("expected cart container to be replaced")
	}
	if _, cart := v.Renders(); cart != 2 {
		t.Errorf("expected 2 cart renders, got %d", cart)
	}
}

func TestContentIsEscaped(t *testing.T) {
	v := New()
	v.RenderInventory([]models.InventoryItem{{ID: 1, Content: "<script>x</script>"}})

	out := page(t, v)
	if strings.Contains(out, "<script>x</script>") {
		t.Error("expected content to be escaped")
	}
}

func TestUpdateQuantity_TargetsOneElement(t *testing.T) {
	v := New()
	v.RenderInventory([]models.InventoryItem{
		{ID: 1, Content: "Apple"},
		{ID: 2, Content: "Banana"},
	})

	v.UpdateQuantity(1, 3)
	v.UpdateQuantity(9, 3)

	out := page(t, v)
	if !strings.Contains(out, `<span id="quantity-1">3</span>`) {
		t.Error("expected quantity-1 to be 3")
	}
	if !strings.Contains(out, `<span id="quantity-2">0</span>`) {
		t.Error("expected quantity-2 untouched")
	}
	if inventory, _ := v.Renders(); inventory != 1 {
		t.Errorf("expected a single inventory render, got %d", inventory)
	}

	var sb strings.Builder
	if err := v.WriteQuantity(&sb, 1); err != nil {
		t.Fatalf("write quantity: %v", err)
	}
	if sb.String() != `<span id="quantity-1">3</span>` {
		t.Errorf("unexpected fragment %q", sb.String())
	}
	if err := v.WriteQuantity(&sb, 9); !errors.Is(err, ErrNoElement) {
		t.Errorf("expected ErrNoElement, got %v", err)
	}
}

func TestAlertsShownOnce(t *testing.T) {
	v := New()
	v.Alert("check out successfully!")

	if !strings.Contains(page(t, v), "check out successfully!") {
		t.Error("expected alert on first page")
	}
	if strings.Contains(page(t, v), "check out successfully!") {
		t.Error("expected alert to be consumed")
	}
}

func TestStaticAssets(t *testing.T) {
	if _, err := fs.Stat(Static(), "app.js"); err != nil {
		t.Errorf("expected app.js: %v", err)
	}
}
