package router

import (
	"github.com/foodhubapp/foodhub/controllers"
	"github.com/foodhubapp/foodhub/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	foodCtrl := controllers.NewFoodController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	reviewCtrl := controllers.NewReviewController(db)
	invoiceCtrl := controllers.NewInvoiceController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/change-password", userCtrl.ChangePassword)

		auth.GET("/menu", foodCtrl.GetMenu)
		auth.GET("/foods/:food_id", foodCtrl.GetFoodByID)
		auth.POST("/foods/:food_id/reviews", reviewCtrl.CreateReview)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items/:food_id", cartCtrl.AddToCart)
		auth.POST("/cart/items/:food_id/increase", cartCtrl.IncreaseItem)
		auth.POST("/cart/items/:food_id/decrease", cartCtrl.DecreaseItem)
		auth.DELETE("/cart/items/:food_id", cartCtrl.RemoveItem)
		auth.POST("/cart/coupon", cartCtrl.ApplyCoupon)

		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id/status", orderCtrl.GetOrderStatus)
		auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		auth.GET("/orders/:order_id/invoice", invoiceCtrl.GenerateInvoice)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/orders", adminCtrl.GetAllOrders)
		admin.POST("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)
		admin.POST("/orders/:order_id/cancel", adminCtrl.CancelOrder)
		admin.GET("/reports/top-foods-chart", adminCtrl.TopFoodsChart)

		admin.POST("/foods", foodCtrl.CreateFood)
		admin.PATCH("/foods/:food_id", foodCtrl.UpdateFood)
		admin.DELETE("/foods/:food_id", foodCtrl.DeleteFood)

		admin.POST("/restaurants", middlewares.RequireSuperAdmin(), restaurantCtrl.CreateRestaurant)
	}

	// Live dashboard updates over websocket, token via query parameter.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/admin", controllers.DashboardStream)
	}

	return r
}
