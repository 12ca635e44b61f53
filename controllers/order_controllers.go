package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/live"
	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		Orders: services.NewOrderService(db),
	}
}

// Checkout turns the user's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
		Address       string `json:"address"`
		Phone         string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Checkout(userID, req.PaymentMethod, req.Address, req.Phone)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %s placed by user %d (total %.2f)", order.Reference, userID, order.Total)
	live.BroadcastOrderCreated(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders lists the user's orders, newest first, with items, status
// history and a reviewed flag per item.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	reviewed := map[uint]int{}
	var reviews []models.Review
	oc.DB.Where("user_id = ?", userID).Find(&reviews)
	for _, r := range reviews {
		reviewed[r.FoodID] = r.Rating
	}

	type orderItemView struct {
		models.OrderItem
		Reviewed bool `json:"reviewed"`
		Rating   int  `json:"rating,omitempty"`
	}
	type orderView struct {
		models.Order
		Items []orderItemView `json:"items"`
	}

	data := make([]orderView, len(orders))
	for i, order := range orders {
		view := orderView{Order: order}
		for _, item := range order.OrderItems {
			iv := orderItemView{OrderItem: item}
			if rating, ok := reviewed[item.FoodID]; ok {
				iv.Reviewed = true
				iv.Rating = rating
			}
			view.Items = append(view.Items, iv)
		}
		data[i] = view
	}

	utils.RespondJSON(c, http.StatusOK, "Your orders", data)
}

// GetOrderStatus returns the current status for polling clients. Owners
// only.
func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, services.ErrUnauthorized)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// CancelOrder is the customer-initiated cancellation.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.Cancel(uint(orderID), userID)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d cancelled by user %d", order.ID, userID)
	live.BroadcastStatusUpdated(*order)

	utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", order)
}
