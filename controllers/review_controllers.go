package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview stores a rating for a food. Only allowed once per (user,
// food), and only when the user has a delivered order containing the food.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	foodID, _ := strconv.Atoi(c.Param("food_id"))

	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("%w: rating must be between 1 and 5", services.ErrValidation))
		return
	}

	var food models.Food
	if err := rc.DB.First(&food, foodID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	// Proof of a delivered order containing this food.
	var delivered int64
	rc.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.food_id = ?",
			userID, models.StatusDelivered, foodID).
		Count(&delivered)
	if delivered == 0 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("%w: you can review only delivered orders", services.ErrValidation))
		return
	}

	var existing models.Review
	if err := rc.DB.Where("user_id = ? AND food_id = ?", userID, foodID).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, services.ErrDuplicateReview)
		return
	}

	review := models.Review{
		UserID:  userID,
		FoodID:  uint(foodID),
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review submitted successfully", review)
}
