package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct {
	DB      *gorm.DB
	Billing *services.BillingService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{
		DB:      db,
		Billing: services.NewBillingService(db),
	}
}

// GetCart lists the user's cart with the running total.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	items, total, err := cc.loadCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"items":       items,
		"total":       total,
		"discount":    0,
		"final_total": total,
	})
}

// AddToCart inserts the food at quantity 1 or increments an existing entry.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	foodID, _ := strconv.Atoi(c.Param("food_id"))

	var food models.Food
	if err := cc.DB.First(&food, foodID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	var item models.CartItem
	err := cc.DB.Where("user_id = ? AND food_id = ?", userID, foodID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity++
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, FoodID: food.ID, Quantity: 1}
		if err := cc.DB.Create(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Added to cart", gin.H{
		"food_id":  food.ID,
		"quantity": item.Quantity,
	})
}

// IncreaseItem bumps the quantity of an existing cart entry.
func (cc *CartController) IncreaseItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	foodID, _ := strconv.Atoi(c.Param("food_id"))

	var item models.CartItem
	if err := cc.DB.Where("user_id = ? AND food_id = ?", userID, foodID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not in cart"))
		return
	}

	item.Quantity++
	if err := cc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Quantity increased", gin.H{
		"food_id":  item.FoodID,
		"quantity": item.Quantity,
	})
}

// DecreaseItem lowers the quantity, deleting the entry when it would reach
// zero. A cart row never holds quantity below 1.
func (cc *CartController) DecreaseItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	foodID, _ := strconv.Atoi(c.Param("food_id"))

	var item models.CartItem
	if err := cc.DB.Where("user_id = ? AND food_id = ?", userID, foodID).First(&item).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Quantity decreased", gin.H{
			"food_id":  foodID,
			"quantity": 0,
		})
		return
	}

	if item.Quantity > 1 {
		item.Quantity--
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Quantity decreased", gin.H{
			"food_id":  item.FoodID,
			"quantity": item.Quantity,
		})
		return
	}

	if err := cc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{
		"food_id":  item.FoodID,
		"quantity": 0,
	})
}

// RemoveItem deletes a cart entry outright.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	foodID, _ := strconv.Atoi(c.Param("food_id"))

	if err := cc.DB.Where("user_id = ? AND food_id = ?", userID, foodID).
		Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{"food_id": foodID})
}

// ApplyCoupon prices the cart with a coupon code. Nothing is stored; the
// discount applies to the response only.
func (cc *CartController) ApplyCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, total, err := cc.loadCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrEmptyCart)
		return
	}

	finalTotal, discount, err := cc.Billing.ApplyCoupon(total, req.Code)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon applied", gin.H{
		"items":       items,
		"total":       total,
		"discount":    discount,
		"final_total": finalTotal,
	})
}

func (cc *CartController) loadCart(userID uint) ([]models.CartItem, float64, error) {
	var items []models.CartItem
	if err := cc.DB.Preload("Food").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return items, total, nil
}
