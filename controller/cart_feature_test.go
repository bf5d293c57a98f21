package controller

import (
	"Storefront/models"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
)

type cartTestContext struct {
	inventory []models.InventoryItem
	cart      []models.CartItem
	remote    *mockRemote
	view      *mockView
	ctrl      *Controller
}

func (c *cartTestContext) reset() {
	c.inventory = nil
	c.cart = nil
	c.remote = nil
	c.view = nil
	c.ctrl = nil
}

func (c *cartTestContext) theInventoryHoldsItem(id int, content string) error {
	c.inventory = append(c.inventory, models.InventoryItem{ID: id, Content: content})
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	c.cart = nil
	return nil
}

func (c *cartTestContext) theStoreIsLoaded() error {
	c.remote = newMockRemote(c.inventory, c.cart)
	c.view = newMockView()
	c.ctrl = New("feature", c.remote, c.view, newMockCache(), nil)
	return c.ctrl.Bootstrap(context.Background())
}

func (c *cartTestContext) iChangeTheQuantityTimes(id, delta, times int) error {
	for i := 0; i < times; i++ {
		if _, ok := c.ctrl.HandleUpdateAmount(id, delta); !ok {
			return fmt.Errorf("item %d not found", id)
		}
	}
	return nil
}

func (c *cartTestContext) iAddItemToTheCart(id int) error {
	return c.ctrl.HandleAddToCart(context.Background(), id)
}

func (c *cartTestContext) theBackendRejectsDeleting(id int) error {
	c.remote.deleteErr[id] = errors.New("rejected")
	return nil
}

func (c *cartTestContext) iCheckOut() error {
	// failures are reported through the alert
	_ = c.ctrl.HandleCheckout(context.Background())
	return nil
}

func (c *cartTestContext) theDisplayedQuantityIs(id, quantity int) error {
	if got := c.view.quantities[id]; got != quantity {
		return fmt.Errorf("expected displayed quantity %d, got %d", quantity, got)
	}
	return nil
}

func (c *cartTestContext) theInventoryQuantityIs(id, quantity int) error {
	item, ok := c.ctrl.State().FindInventory(id)
	if !ok {
		return fmt.Errorf("item %d not in inventory", id)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected inventory quantity %d, got %d", quantity, item.Quantity)
	}
	return nil
}

func (c *cartTestContext) theCartContains(id int, content string, quantity int) error {
	want := models.CartItem{ID: id, Content: content, Quantity: quantity}
	cart := c.ctrl.State().Cart()
	if len(cart) != 1 || cart[0] != want {
		return fmt.Errorf("expected cart [%+v], got %+v", want, cart)
	}
	return nil
}

func (c *cartTestContext) theBackendReceivedAdds(n, id, quantity int) error {
	if len(c.remote.added) != n {
		return fmt.Errorf("expected %d adds, got %d", n, len(c.remote.added))
	}
	last := c.remote.added[len(c.remote.added)-1]
	if last.ID != id || last.Quantity != quantity {
		return fmt.Errorf("expected add of %d x%d, got %+v", id, quantity, last)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmptyNow() error {
	if cart := c.ctrl.State().Cart(); len(cart) != 0 {
		return fmt.Errorf("expected empty cart, got %+v", cart)
	}
	return nil
}

func (c *cartTestContext) theAlertWasShownOnce(message string) error {
	if n := c.view.alertCount(message); n != 1 {
		return fmt.Errorf("expected alert %q once, got %d in %v", message, n, c.view.alerts)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the inventory holds item (\d+) "([^"]*)"$`, tc.theInventoryHoldsItem)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the store is loaded$`, tc.theStoreIsLoaded)
	ctx.Step(`^the backend rejects deleting item (\d+)$`, tc.theBackendRejectsDeleting)

	// When steps
	ctx.Step(`^I change the quantity of item (\d+) by (-?\d+), (\d+) times$`, tc.iChangeTheQuantityTimes)
	ctx.Step(`^I add item (\d+) to the cart$`, tc.iAddItemToTheCart)
	ctx.Step(`^I check out$`, tc.iCheckOut)

	// Then steps
	ctx.Step(`^the displayed quantity of item (\d+) is (\d+)$`, tc.theDisplayedQuantityIs)
	ctx.Step(`^the inventory quantity of item (\d+) is (\d+)$`, tc.theInventoryQuantityIs)
	ctx.Step(`^the cart contains item (\d+) "([^"]*)" with quantity (\d+)$`, tc.theCartContains)
	ctx.Step(`^the backend received (\d+) adds? of item (\d+) with quantity (\d+)$`, tc.theBackendReceivedAdds)
	ctx.Step(`^the cart is empty now$`, tc.theCartIsEmptyNow)
	ctx.Step(`^the alert "([^"]*)" was shown once$`, tc.theAlertWasShownOnce)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
