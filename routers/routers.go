package routers

import (
	"Storefront/controller"
	"Storefront/handlers"
	"Storefront/middleware"
	"Storefront/session"
	"Storefront/view"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	Registry   *controller.Registry
	Snapshots  handlers.CartSnapshots
	Signer     *session.Signer
	SessionTTL time.Duration
	Logger     *zap.Logger
}

func SetupRouters(opts Options) *gin.Engine {
	logger := opts.Logger
	registry := opts.Registry

	router := gin.New()
	router.Use(middleware.LoggerMiddleware(logger), gin.Recovery())
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Warn("set trusted proxies", zap.Error(err))
	}

	router.StaticFS("/static", http.FS(view.Static()))
	router.GET("/health", handlers.HealthHandler)

	store := router.Group("/")
	store.Use(middleware.SessionMiddleware(opts.Signer, opts.SessionTTL, logger))
	{
		//商品與購物車頁面
		store.GET("/", func(context *gin.Context) {
			handlers.IndexHandler(context, registry, logger)
		})
		//購物車快照
		store.GET("/cart/snapshot", func(context *gin.Context) {
			handlers.CartSnapshotHandler(context, opts.Snapshots)
		})

		actions := store.Group("/")
		actions.Use(middleware.CheckSessionMiddleware())
		{
			//調整欲購買數量
			actions.POST("/inventory/:id/amount", func(context *gin.Context) {
				handlers.UpdateAmountHandler(context, registry, logger)
			})
			//新增商品至購物車
			actions.POST("/inventory/:id/cart", func(context *gin.Context) {
				handlers.AddToCartHandler(context, registry, logger)
			})
			//刪除購物車商品
			actions.POST("/cart/:id/delete", func(context *gin.Context) {
				handlers.DeleteFromCartHandler(context, registry, logger)
			})
			//更新購物車商品數量
			actions.POST("/cart/:id/quantity", func(context *gin.Context) {
				handlers.SetCartQuantityHandler(context, registry, logger)
			})
			//清除購物車商品
			actions.POST("/cart/clear", func(context *gin.Context) {
				handlers.ClearCartHandler(context, registry, logger)
			})
			//結帳
			actions.POST("/checkout", func(context *gin.Context) {
				handlers.CheckoutHandler(context, registry, logger)
			})
		}
	}

	return router
}
