package routers

import (
	"net/http"
	"time"

	"FoodOrder/config"
	"FoodOrder/handlers"
	"FoodOrder/middleware"
	"FoodOrder/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Reviews  *services.ReviewService
	Carts    *services.CartService
	Orders   *services.OrderService
}

func corsConfig(origins []string) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
	}
	corsConfig.AllowOrigins = origins
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	return corsConfig
}

func SetupRouters(cfg config.ServerConfig, svc Services, log *zap.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log.Named("http")))
	router.Use(cors.New(corsConfig(cfg.AllowOrigin)))
	_ = router.SetTrustedProxies(nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// every route below sees the caller (if any) and is checked against Policy
	router.Use(middleware.AuthMiddleware(svc.Accounts, log.Named("auth")))
	router.Use(middleware.AuthorizeMiddleware(Policy))

	account := router.Group("/account")
	{
		account.POST("/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, svc.Accounts)
		})
		account.POST("/login", func(context *gin.Context) {
			handlers.LoginHandler(context, svc.Accounts)
		})
		account.POST("/logout", func(context *gin.Context) {
			handlers.LogOutHandler(context, svc.Accounts)
		})
		account.GET("/me", func(context *gin.Context) {
			handlers.GetUserProfileHandler(context, svc.Accounts)
		})
	}

	restaurant := router.Group("/restaurant")
	{
		restaurant.GET("", func(context *gin.Context) {
			handlers.GetRestaurantListHandler(context, svc.Catalog)
		})
		restaurant.GET("/:id", func(context *gin.Context) {
			handlers.GetRestaurantDataHandler(context, svc.Catalog)
		})
		restaurant.POST("", func(context *gin.Context) {
			handlers.CreateRestaurantHandler(context, svc.Catalog)
		})
		restaurant.PUT("/:id", func(context *gin.Context) {
			handlers.UpdateRestaurantHandler(context, svc.Catalog)
		})
		restaurant.DELETE("/:id", func(context *gin.Context) {
			handlers.DeleteRestaurantHandler(context, svc.Catalog)
		})
		restaurant.GET("/:id/reviews", func(context *gin.Context) {
			handlers.GetReviewListHandler(context, svc.Reviews)
		})
		restaurant.POST("/:id/reviews", func(context *gin.Context) {
			handlers.AddReviewHandler(context, svc.Reviews)
		})
	}

	router.GET("/menuitems", func(context *gin.Context) {
		handlers.GetMenuItemListHandler(context, svc.Catalog)
	})
	router.GET("/menuitems/:id", func(context *gin.Context) {
		handlers.GetMenuItemDataHandler(context, svc.Catalog)
	})

	cart := router.Group("/cart")
	{
		cart.GET("/:userId", func(context *gin.Context) {
			handlers.GetCartHandler(context, svc.Carts)
		})
		cart.POST("/add", func(context *gin.Context) {
			handlers.AddToCartHandler(context, svc.Carts)
		})
		cart.DELETE("/remove/:cartItemId", func(context *gin.Context) {
			handlers.DeleteCartItemHandler(context, svc.Carts)
		})
		cart.DELETE("/clear/:userId", func(context *gin.Context) {
			handlers.ClearCartHandler(context, svc.Carts)
		})
		cart.PUT("/update", func(context *gin.Context) {
			handlers.UpdateCartItemQuantityHandler(context, svc.Carts)
		})
	}

	order := router.Group("/order")
	{
		order.POST("", func(context *gin.Context) {
			handlers.SendOrderHandler(context, svc.Orders)
		})
		order.GET("", func(context *gin.Context) {
			handlers.GetOrderListHandler(context, svc.Orders)
		})
		order.GET("/:id", func(context *gin.Context) {
			handlers.GetOrderDataHandler(context, svc.Orders)
		})
		order.DELETE("/softdelete/:id", func(context *gin.Context) {
			handlers.SoftDeleteOrderHandler(context, svc.Orders)
		})
	}

	admin := router.Group("/admin")
	{
		admin.POST("/register-admin", func(context *gin.Context) {
			handlers.RegisterAdminHandler(context, svc.Accounts)
		})
		admin.POST("/add-restaurant", func(context *gin.Context) {
			handlers.CreateRestaurantHandler(context, svc.Catalog)
		})
		admin.GET("/restaurants", func(context *gin.Context) {
			handlers.GetRestaurantListHandler(context, svc.Catalog)
		})
		admin.PUT("/update-restaurant/:id", func(context *gin.Context) {
			handlers.UpdateRestaurantHandler(context, svc.Catalog)
		})
		admin.DELETE("/delete-restaurant/:id", func(context *gin.Context) {
			handlers.DeleteRestaurantHandler(context, svc.Catalog)
		})
		admin.POST("/add-menuitem", func(context *gin.Context) {
			handlers.CreateMenuItemHandler(context, svc.Catalog)
		})
		admin.GET("/menuitems", func(context *gin.Context) {
			handlers.GetMenuItemListHandler(context, svc.Catalog)
		})
		admin.PUT("/update-menuitem/:id", func(context *gin.Context) {
			handlers.UpdateMenuItemHandler(context, svc.Catalog)
		})
		admin.DELETE("/delete-menuitem/:id", func(context *gin.Context) {
			handlers.DeleteMenuItemHandler(context, svc.Catalog)
		})
		admin.GET("/orders", func(context *gin.Context) {
			handlers.GetAllOrdersHandler(context, svc.Orders)
		})
		admin.PUT("/update-order/:id", func(context *gin.Context) {
			handlers.UpdateOrderStatusHandler(context, svc.Orders)
		})
		admin.DELETE("/delete-order/:id", func(context *gin.Context) {
			handlers.AdminDeleteOrderHandler(context, svc.Orders)
		})
		admin.GET("/order-history/:id", func(context *gin.Context) {
			handlers.GetOrderHistoryHandler(context, svc.Orders)
		})
	}

	return router
}
