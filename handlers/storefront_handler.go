package handlers

import (
	"Storefront/controller"
	"Storefront/middleware"
	"Storefront/models"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	checkoutControl = "checkout-btn"
	fetchHeader     = "X-Requested-With"
	fetchValue      = "fetch"
)

// CartSnapshots reads the cart snapshot kept for a session.
type CartSnapshots interface {
	Load(ctx context.Context, sessionID string) ([]models.CartItem, error)
}

// loadSession returns the caller's session, loading the store on first use.
func loadSession(c *gin.Context, registry *controller.Registry, logger *zap.Logger) *controller.Session {
	sessionID := c.GetString(middleware.SessionIDKey)
	s, err := registry.Get(c.Request.Context(), sessionID)
	if err != nil {
		logger.Warn("session not loaded", zap.String("session", sessionID), zap.Error(err))
	}
	return s
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid item id",
			"error":   err.Error(),
		})
		return 0, false
	}
	return id, true
}

func formInt(c *gin.Context, field string) (int, bool) {
	n, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid " + field,
			"error":   err.Error(),
		})
		return 0, false
	}
	return n, true
}

func backToStore(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func IndexHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	s := loadSession(c, registry, logger)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.View.WritePage(c.Writer); err != nil {
		logger.Error("write page", zap.Error(err))
		_ = c.Error(err)
	}
}

// UpdateAmountHandler moves the selected quantity of one inventory item.
// Script requests get the quantity element back instead of a redirect.
func UpdateAmountHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	delta, ok := formInt(c, "delta")
	if !ok {
		return
	}
	if delta != -1 && delta != 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid delta",
			"error":   "delta must be -1 or 1",
		})
		return
	}

	s := loadSession(c, registry, logger)
	s.Lock()
	_, found := s.Controller.HandleUpdateAmount(id, delta)
	s.Unlock()

	if c.GetHeader(fetchHeader) != fetchValue {
		backToStore(c)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no such inventory item",
		})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.View.WriteQuantity(c.Writer, id); err != nil {
		logger.Error("write quantity", zap.Int("id", id), zap.Error(err))
		_ = c.Error(err)
	}
}

func AddToCartHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s := loadSession(c, registry, logger)
	s.Lock()
	defer s.Unlock()
	// failures are surfaced as an alert on the next page
	_ = s.Controller.HandleAddToCart(c.Request.Context(), id)
	backToStore(c)
}

func DeleteFromCartHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s := loadSession(c, registry, logger)
	s.Lock()
	defer s.Unlock()
	_ = s.Controller.HandleDelete(c.Request.Context(), id)
	backToStore(c)
}

func SetCartQuantityHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	quantity, ok := formInt(c, "quantity")
	if !ok {
		return
	}

	s := loadSession(c, registry, logger)
	s.Lock()
	defer s.Unlock()
	if err := s.Controller.HandleSetCartQuantity(c.Request.Context(), id, quantity); errors.Is(err, controller.ErrNotInCart) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	backToStore(c)
}

func ClearCartHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	s := loadSession(c, registry, logger)
	s.Lock()
	defer s.Unlock()
	_ = s.Controller.HandleClearCart(c.Request.Context())
	backToStore(c)
}

// CheckoutHandler only acts when the submitting control is the checkout
// button.
func CheckoutHandler(c *gin.Context, registry *controller.Registry, logger *zap.Logger) {
	if c.PostForm("control") != checkoutControl {
		backToStore(c)
		return
	}

	s := loadSession(c, registry, logger)
	s.Lock()
	defer s.Unlock()
	_ = s.Controller.HandleCheckout(c.Request.Context())
	backToStore(c)
}

func CartSnapshotHandler(c *gin.Context, snapshots CartSnapshots) {
	cart, err := snapshots.Load(c.Request.Context(), c.GetString(middleware.SessionIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read cart snapshot",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
