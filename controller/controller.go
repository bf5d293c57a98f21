package controller

import (
	"Storefront/models"
	"Storefront/state"
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	AlertLoadFailed     = "failed to load the store"
	AlertAddFailed      = "failed to add the item to the cart"
	AlertDeleteFailed   = "failed to remove the item from the cart"
	AlertUpdateFailed   = "failed to update the cart"
	AlertClearFailed    = "failed to clear the cart"
	AlertCheckoutOK     = "check out successfully!"
	AlertCheckoutFailed = "check out error!"
)

var ErrNotInCart = errors.New("item is not in the cart")

// Remote is the backend the controller reads from and writes to.
type Remote interface {
	GetInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, item models.CartItem) (models.CartItem, error)
	UpdateCart(ctx context.Context, id, newAmount int) (models.CartItem, error)
	DeleteFromCart(ctx context.Context, id int) error
	Checkout(ctx context.Context) error
}

// Renderer draws state into the session document.
type Renderer interface {
	RenderInventory(inventory []models.InventoryItem)
	RenderCart(cart []models.CartItem)
	UpdateQuantity(id, quantity int)
	Alert(message string)
}

// CartCache keeps a best-effort copy of the session cart.
type CartCache interface {
	Save(ctx context.Context, sessionID string, cart []models.CartItem) error
	Remove(ctx context.Context, sessionID string) error
}

// Controller turns shopper actions into backend calls and state changes for
// a single session. Callers serialize access.
type Controller struct {
	sessionID string
	remote    Remote
	view      Renderer
	cache     CartCache
	state     *state.State
	logger    *zap.Logger

	unsubscribe func()
	loaded      bool
}

func New(sessionID string, remote Remote, view Renderer, cache CartCache, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		sessionID: sessionID,
		remote:    remote,
		view:      view,
		cache:     cache,
		state:     state.New(),
		logger:    logger.With(zap.String("session", sessionID)),
	}
}

// State exposes the session state for reading.
func (c *Controller) State() *state.State {
	return c.state
}

// Loaded reports whether Init has succeeded at least once.
func (c *Controller) Loaded() bool {
	return c.loaded
}

// Bootstrap subscribes the full re-render to state changes and loads the
// store. The subscription is made only once.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if c.unsubscribe == nil {
		c.unsubscribe = c.state.Subscribe(c.render)
	}
	return c.Init(ctx)
}

// Close drops the render subscription of an evicted session.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Init fetches inventory and cart concurrently and stores both in one update.
func (c *Controller) Init(ctx context.Context) error {
	var (
		inventory []models.InventoryItem
		cart      []models.CartItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inventory, err = c.remote.GetInventory(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cart, err = c.remote.GetCart(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("load store", zap.Error(err))
		c.view.Alert(AlertLoadFailed)
		return fmt.Errorf("load store: %w", err)
	}

	c.state.Update(func(inv *[]models.InventoryItem, cur *[]models.CartItem) {
		*inv = inventory
		*cur = cart
	})
	c.loaded = true
	return nil
}

func (c *Controller) render() {
	c.view.RenderInventory(c.state.Inventory())
	c.view.RenderCart(c.state.Cart())
}

// HandleUpdateAmount moves the selected quantity of an inventory item by
// delta, never below zero. Only that item's quantity element is redrawn and
// nothing is sent to the backend.
func (c *Controller) HandleUpdateAmount(id, delta int) (int, bool) {
	quantity, ok := c.state.SetQuantity(id, func(current int) int {
		return addClamped(current, delta)
	})
	if ok {
		c.view.UpdateQuantity(id, quantity)
	}
	return quantity, ok
}

// HandleAddToCart moves the selected quantity of an inventory item into the
// cart, merging with an existing line, and sends the resulting line to the
// backend. Unknown ids and zero quantities are ignored.
func (c *Controller) HandleAddToCart(ctx context.Context, id int) error {
	if item, ok := c.state.FindInventory(id); !ok || item.Quantity <= 0 {
		return nil
	}

	var (
		line  models.CartItem
		moved bool
	)
	c.state.Update(func(inventory *[]models.InventoryItem, cart *[]models.CartItem) {
		inv := *inventory
		i := indexOfInventory(inv, id)
		if i < 0 || inv[i].Quantity <= 0 {
			return
		}

		if j := indexOfCart(*cart, id); j >= 0 {
			(*cart)[j].Quantity += inv[i].Quantity
			line = (*cart)[j]
		} else {
			line = models.CartItem{
				ID:       inv[i].ID,
				Content:  inv[i].Content,
				Quantity: inv[i].Quantity,
			}
			*cart = append(*cart, line)
		}
		inv[i].Quantity = 0
		moved = true
	})
	if !moved {
		return nil
	}
	c.saveCart(ctx)

	if _, err := c.remote.AddToCart(ctx, line); err != nil {
		c.logger.Error("add to cart", zap.Int("id", id), zap.Int("quantity", line.Quantity), zap.Error(err))
		c.view.Alert(AlertAddFailed)
		return fmt.Errorf("add %d to cart: %w", id, err)
	}
	return nil
}

// HandleDelete removes one line from the backend cart and then locally.
func (c *Controller) HandleDelete(ctx context.Context, id int) error {
	if err := c.remote.DeleteFromCart(ctx, id); err != nil {
		c.logger.Error("delete from cart", zap.Int("id", id), zap.Error(err))
		c.view.Alert(AlertDeleteFailed)
		return fmt.Errorf("delete %d from cart: %w", id, err)
	}

	c.state.Update(func(_ *[]models.InventoryItem, cart *[]models.CartItem) {
		kept := make([]models.CartItem, 0, len(*cart))
		for _, item := range *cart {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		*cart = kept
	})
	c.saveCart(ctx)
	return nil
}

// HandleSetCartQuantity sets the quantity of an existing cart line.
func (c *Controller) HandleSetCartQuantity(ctx context.Context, id, quantity int) error {
	if _, ok := c.state.FindCart(id); !ok {
		return ErrNotInCart
	}
	quantity = max(0, quantity)

	if _, err := c.remote.UpdateCart(ctx, id, quantity); err != nil {
		c.logger.Error("update cart", zap.Int("id", id), zap.Int("quantity", quantity), zap.Error(err))
		c.view.Alert(AlertUpdateFailed)
		return fmt.Errorf("update %d in cart: %w", id, err)
	}

	c.state.Update(func(_ *[]models.InventoryItem, cart *[]models.CartItem) {
		if j := indexOfCart(*cart, id); j >= 0 {
			(*cart)[j].Quantity = quantity
		}
	})
	c.saveCart(ctx)
	return nil
}

// HandleCheckout deletes every cart line concurrently and waits for all of
// them. The local cart is cleared only when every delete succeeded.
func (c *Controller) HandleCheckout(ctx context.Context) error {
	cart := c.state.Cart()

	var g errgroup.Group
	for _, item := range cart {
		id := item.ID
		g.Go(func() error {
			return c.remote.DeleteFromCart(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Error("checkout", zap.Int("lines", len(cart)), zap.Error(err))
		c.view.Alert(AlertCheckoutFailed)
		return fmt.Errorf("checkout: %w", err)
	}

	c.state.SetCart(nil)
	c.removeCart(ctx)
	c.logger.Info("checkout", zap.Int("lines", len(cart)))
	c.view.Alert(AlertCheckoutOK)
	return nil
}

// HandleClearCart empties the backend cart with a single call.
func (c *Controller) HandleClearCart(ctx context.Context) error {
	if err := c.remote.Checkout(ctx); err != nil {
		c.logger.Error("clear cart", zap.Error(err))
		c.view.Alert(AlertClearFailed)
		return fmt.Errorf("clear cart: %w", err)
	}

	c.state.SetCart(nil)
	c.removeCart(ctx)
	return nil
}

func (c *Controller) saveCart(ctx context.Context) {
	if err := c.cache.Save(ctx, c.sessionID, c.state.Cart()); err != nil {
		c.logger.Warn("save cart snapshot", zap.Error(err))
	}
}

func (c *Controller) removeCart(ctx context.Context) {
	if err := c.cache.Remove(ctx, c.sessionID); err != nil {
		c.logger.Warn("remove cart snapshot", zap.Error(err))
	}
}

// addClamped returns current+delta kept within [0, math.MaxInt].
func addClamped(current, delta int) int {
	if delta > 0 && current > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, current+delta)
}

func indexOfInventory(items []models.InventoryItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfCart(items []models.CartItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
