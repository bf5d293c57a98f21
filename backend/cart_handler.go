package backend

import (
	"Storefront/models"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func cartItemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return 0, false
	}
	return id, true
}

func storeFailed(c *gin.Context, logger *zap.Logger, message string, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "購物車中無此商品",
		})
		return
	}
	logger.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": message,
		"error":   err.Error(),
	})
}

func GetCartHandler(c *gin.Context, store Store, logger *zap.Logger) {
	cart, err := store.ListCart(c.Request.Context())
	if err != nil {
		storeFailed(c, logger, "查詢購物車失敗", err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddToCartHandler stores the posted line, replacing the quantity of a line
// already in the cart.
func AddToCartHandler(c *gin.Context, store Store, logger *zap.Logger) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}
	if item.ID <= 0 || item.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "商品ID或數量錯誤",
		})
		return
	}

	saved, err := store.UpsertCartItem(c.Request.Context(), item)
	if err != nil {
		storeFailed(c, logger, "新增購物車商品失敗", err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func UpdateCartItemQuantityHandler(c *gin.Context, store Store, logger *zap.Logger) {
	id, ok := cartItemID(c)
	if !ok {
		return
	}
	var update models.QuantityUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}
	if update.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "數量不可為負數",
		})
		return
	}

	saved, err := store.UpdateCartQuantity(c.Request.Context(), id, update.Quantity)
	if err != nil {
		storeFailed(c, logger, "更新購物車商品數量失敗", err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func DeleteCartItemHandler(c *gin.Context, store Store, logger *zap.Logger) {
	id, ok := cartItemID(c)
	if !ok {
		return
	}

	deleted, err := store.DeleteCartItem(c.Request.Context(), id)
	if err != nil {
		storeFailed(c, logger, "刪除購物車商品失敗", err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}

func ClearCartHandler(c *gin.Context, store Store, logger *zap.Logger) {
	if err := store.ClearCart(c.Request.Context()); err != nil {
		storeFailed(c, logger, "清除購物車失敗", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart cleared",
	})
}
