package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/foodhubapp/foodhub/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Checkout converts the user's cart into an order. The order row, its item
// snapshots, the initial history entry and the cart cleanup all commit in
// one transaction.
func (s *OrderService) Checkout(userID uint, paymentMethod, address, phone string) (*models.Order, error) {
	var cartItems []models.CartItem
	if err := s.DB.Preload("Food").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	var total float64
	for _, item := range cartItems {
		total += item.Food.Price * float64(item.Quantity)
	}

	order := models.Order{
		Reference:     fmt.Sprintf("ORD-%s", uuid.New().String()),
		UserID:        userID,
		Total:         total,
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentStatusPaid,
		RefundStatus:  models.RefundStatusNone,
		Address:       address,
		Phone:         phone,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			FoodID:   item.FoodID,
			FoodName: item.Food.Name,
			Price:    item.Food.Price,
			Quantity: item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		Status:    models.StatusPending,
		ChangedAt: time.Now(),
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus sets an admin-chosen status and appends a history entry. The
// status must be a known lifecycle status, but transitions between known
// statuses are not restricted for admins.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrNotFound
	}

	return &order, s.transition(&order, status, nil)
}

// Cancel is the customer-initiated cancellation. Only Pending or Accepted
// orders qualify; online payments get a mock refund marker.
func (s *OrderService) Cancel(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrNotFound
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	if !order.Cancellable() {
		return nil, ErrInvalidTransition
	}

	extra := map[string]interface{}{}
	if strings.EqualFold(order.PaymentMethod, models.PaymentMethodOnline) {
		extra["payment_status"] = models.PaymentStatusRefunded
		extra["refund_status"] = models.RefundStatusInitiated
		order.PaymentStatus = models.PaymentStatusRefunded
		order.RefundStatus = models.RefundStatusInitiated
	}

	return &order, s.transition(&order, models.StatusCancelled, extra)
}

// AdminCancel cancels unconditionally, matching the admin surface.
func (s *OrderService) AdminCancel(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrNotFound
	}

	return &order, s.transition(&order, models.StatusCancelled, nil)
}

// transition writes the status change and its history row atomically.
func (s *OrderService) transition(order *models.Order, status string, extra map[string]interface{}) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	if err := tx.Model(order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return err
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		Status:    status,
		ChangedAt: time.Now(),
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	order.Status = status
	return nil
}
