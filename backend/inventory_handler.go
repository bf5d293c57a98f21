package backend

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetInventoryHandler(c *gin.Context, store Store, cache InventoryCache, logger *zap.Logger) {
	inventory, err := cache.Inventory(c.Request.Context(), store.ListInventory)
	if err != nil {
		logger.Error("list inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品列表失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, inventory)
}
