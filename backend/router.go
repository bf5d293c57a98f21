package backend

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Next()
	}
}

func SetupRouter(store Store, cache InventoryCache, logger *zap.Logger) *gin.Engine {
	if cache == nil {
		cache = NoCache{}
	}

	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Warn("set trusted proxies", zap.Error(err))
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	//查詢商品列表
	router.GET("/inventory", func(context *gin.Context) {
		GetInventoryHandler(context, store, cache, logger)
	})
	//查詢購物車商品
	router.GET("/cart", func(context *gin.Context) {
		GetCartHandler(context, store, logger)
	})
	//新增商品至購物車
	router.POST("/cart", func(context *gin.Context) {
		AddToCartHandler(context, store, logger)
	})
	//更新購物車商品數量
	router.PUT("/cart/:id", func(context *gin.Context) {
		UpdateCartItemQuantityHandler(context, store, logger)
	})
	//刪除購物車商品
	router.DELETE("/cart/:id", func(context *gin.Context) {
		DeleteCartItemHandler(context, store, logger)
	})
	//清除購物車商品
	router.DELETE("/cart", func(context *gin.Context) {
		ClearCartHandler(context, store, logger)
	})

	return router
}
