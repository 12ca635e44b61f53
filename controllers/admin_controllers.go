package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/live"
	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	chart "github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		DB:     db,
		Orders: services.NewOrderService(db),
	}
}

type topFood struct {
	FoodName string `json:"food_name"`
	Quantity int    `json:"quantity"`
}

type dashboardStats struct {
	TotalUsers   int64          `json:"total_users"`
	TotalOrders  int64          `json:"total_orders"`
	TotalRevenue float64        `json:"total_revenue"`
	TopFoods     []topFood      `json:"top_foods"`
	RecentOrders []models.Order `json:"recent_orders"`
}

// GetDashboardStats aggregates order and revenue numbers. Restaurant admins
// see only orders that touch their own restaurant's foods; missing data
// yields zeros, never an error.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	restaurantID, scoped := ac.scope(c)

	var stats dashboardStats
	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)

	if scoped {
		ac.DB.Model(&models.Order{}).
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN foods ON foods.id = order_items.food_id").
			Where("foods.restaurant_id = ?", restaurantID).
			Distinct("orders.id").
			Count(&stats.TotalOrders)

		ac.DB.Model(&models.OrderItem{}).
			Joins("JOIN foods ON foods.id = order_items.food_id").
			Where("foods.restaurant_id = ?", restaurantID).
			Select("COALESCE(SUM(order_items.price * order_items.quantity), 0)").
			Row().Scan(&stats.TotalRevenue)
	} else {
		ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
		ac.DB.Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").
			Row().Scan(&stats.TotalRevenue)
	}

	stats.TopFoods = ac.topFoods(restaurantID, scoped, 5)
	stats.RecentOrders = ac.recentOrders(restaurantID, scoped, 5)

	live.BroadcastDashboard(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetAllOrders lists orders for the admin surface, scoped for restaurant
// admins, newest first, with items and the ordering user.
func (ac *AdminController) GetAllOrders(c *gin.Context) {
	restaurantID, scoped := ac.scope(c)

	query := ac.DB.Preload("OrderItems").Preload("User").Order("orders.id DESC")
	if scoped {
		query = query.
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN foods ON foods.id = order_items.food_id").
			Where("foods.restaurant_id = ?", restaurantID).
			Distinct("orders.*")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All orders", orders)
}

// UpdateOrderStatus sets an admin-supplied lifecycle status.
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := ac.Orders.UpdateStatus(uint(orderID), req.Status)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d status set to %s", order.ID, order.Status)
	live.BroadcastStatusUpdated(*order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder cancels any order from the admin surface.
func (ac *AdminController) CancelOrder(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := ac.Orders.AdminCancel(uint(orderID))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	live.BroadcastStatusUpdated(*order)

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// TopFoodsChart renders the top sellers as a PNG bar chart.
func (ac *AdminController) TopFoodsChart(c *gin.Context) {
	restaurantID, scoped := ac.scope(c)

	foods := ac.topFoods(restaurantID, scoped, 5)
	if len(foods) == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no sales data yet"))
		return
	}

	bars := make([]chart.Value, len(foods))
	for i, f := range foods {
		bars[i] = chart.Value{Value: float64(f.Quantity), Label: f.FoodName}
	}

	graph := chart.BarChart{
		Title:    "Top Selling Foods",
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (ac *AdminController) topFoods(restaurantID uint, scoped bool, limit int) []topFood {
	query := ac.DB.Model(&models.OrderItem{}).
		Select("order_items.food_name, SUM(order_items.quantity) AS quantity").
		Group("order_items.food_name").
		Order("SUM(order_items.quantity) DESC, order_items.food_name ASC").
		Limit(limit)
	if scoped {
		query = query.
			Joins("JOIN foods ON foods.id = order_items.food_id").
			Where("foods.restaurant_id = ?", restaurantID)
	}

	var foods []topFood
	query.Scan(&foods)
	return foods
}

func (ac *AdminController) recentOrders(restaurantID uint, scoped bool, limit int) []models.Order {
	query := ac.DB.Order("orders.id DESC").Limit(limit)
	if scoped {
		query = query.
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN foods ON foods.id = order_items.food_id").
			Where("foods.restaurant_id = ?", restaurantID).
			Distinct("orders.*")
	}

	var orders []models.Order
	query.Find(&orders)
	return orders
}

// scope resolves the caller's restaurant for restaurant-scoped admins.
func (ac *AdminController) scope(c *gin.Context) (uint, bool) {
	if c.GetString("role") != models.RoleRestaurantAdmin {
		return 0, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return 0, false
	}
	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil || user.RestaurantID == nil {
		return 0, false
	}
	return *user.RestaurantID, true
}
