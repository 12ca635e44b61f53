package controllers

import (
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("restaurant_id"))

	var restaurant models.Restaurant
	if err := rc.DB.Preload("Foods").First(&restaurant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// CreateRestaurant is limited to super admins by the router.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Rating       float64 `json:"rating"`
		DeliveryTime string  `json:"delivery_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Rating:       req.Rating,
		DeliveryTime: req.DeliveryTime,
	}
	if restaurant.Rating == 0 {
		restaurant.Rating = 4.0
	}
	if restaurant.DeliveryTime == "" {
		restaurant.DeliveryTime = "30 mins"
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}
