package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FoodController struct {
	DB              *gorm.DB
	Recommendations *services.RecommendationService
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{
		DB:              db,
		Recommendations: services.NewRecommendationService(db),
	}
}

type menuFood struct {
	models.Food
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

// GetMenu lists foods with optional filters: search (name or cuisine,
// case-insensitive), cuisine, type (veg|nonveg), min_price, max_price and
// sort (low|high by price). Filters combine with AND; a missing parameter
// means no constraint.
func (fc *FoodController) GetMenu(c *gin.Context) {
	query := fc.DB.Model(&models.Food{})

	search := strings.TrimSpace(c.Query("search"))
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(cuisine) LIKE ?", like, like)
	}

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine = ?", cuisine)
	}

	switch c.Query("type") {
	case "veg":
		query = query.Where("is_veg = ?", true)
	case "nonveg":
		query = query.Where("is_veg = ?", false)
	}

	if v := c.Query("min_price"); v != "" {
		if minPrice, err := strconv.ParseFloat(v, 64); err == nil {
			query = query.Where("price >= ?", minPrice)
		}
	}
	if v := c.Query("max_price"); v != "" {
		if maxPrice, err := strconv.ParseFloat(v, 64); err == nil {
			query = query.Where("price <= ?", maxPrice)
		}
	}

	switch c.Query("sort") {
	case "low":
		query = query.Order("price ASC")
	case "high":
		query = query.Order("price DESC")
	}

	var foods []models.Food
	if err := query.Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Average review rating per food, one grouped query.
	ratings := map[uint]float64{}
	var ratingRows []struct {
		FoodID uint
		Avg    float64
	}
	fc.DB.Model(&models.Review{}).
		Select("food_id, AVG(rating) AS avg").
		Group("food_id").
		Scan(&ratingRows)
	for _, row := range ratingRows {
		ratings[row.FoodID] = row.Avg
	}

	menu := make([]menuFood, len(foods))
	for i, food := range foods {
		menu[i] = menuFood{Food: food}
		if avg, ok := ratings[food.ID]; ok {
			rounded := float64(int(avg*10+0.5)) / 10
			menu[i].AvgRating = &rounded
		}
	}

	var allCuisines []string
	fc.DB.Model(&models.Food{}).Distinct().Pluck("cuisine", &allCuisines)

	data := gin.H{
		"foods":    menu,
		"cuisines": allCuisines,
	}

	// Cart quantities and recommendations are per-user extras.
	if userID, ok := currentUserID(c); ok {
		var cartItems []models.CartItem
		fc.DB.Where("user_id = ?", userID).Find(&cartItems)
		cartMap := map[uint]int{}
		for _, item := range cartItems {
			cartMap[item.FoodID] = item.Quantity
		}
		data["cart"] = cartMap

		if c.GetString("role") == models.RoleCustomer {
			if recs, err := fc.Recommendations.Recommend(userID, services.DefaultRecommendationLimit); err == nil {
				data["recommendations"] = recs
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", data)
}

// GetFoodByID returns one food with its reviews and average rating.
func (fc *FoodController) GetFoodByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var reviews []models.Review
	fc.DB.Where("food_id = ?", food.ID).Find(&reviews)

	data := gin.H{
		"food":    food,
		"reviews": reviews,
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		data["avg_rating"] = float64(int(avg*10+0.5)) / 10
	}

	utils.RespondJSON(c, http.StatusOK, "Food detail", data)
}

// CreateFood adds a dish. Restaurant admins are pinned to their own
// restaurant regardless of the request body.
func (fc *FoodController) CreateFood(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Price        float64 `json:"price" binding:"required"`
		Image        string  `json:"image"`
		Cuisine      string  `json:"cuisine" binding:"required"`
		IsVeg        *bool   `json:"is_veg"`
		IsBestseller bool    `json:"is_bestseller"`
		RestaurantID uint    `json:"restaurant_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := req.RestaurantID
	if rid, scoped := fc.scopedRestaurantID(c); scoped {
		restaurantID = rid
	}
	if restaurantID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("restaurant_id is required"))
		return
	}

	food := models.Food{
		Name:         req.Name,
		Price:        req.Price,
		Image:        req.Image,
		Cuisine:      req.Cuisine,
		IsVeg:        req.IsVeg == nil || *req.IsVeg,
		IsBestseller: req.IsBestseller,
		RestaurantID: restaurantID,
	}
	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Dish added successfully", food)
}

// UpdateFood edits a dish, restricted to the owning restaurant for
// restaurant admins.
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if rid, scoped := fc.scopedRestaurantID(c); scoped && food.RestaurantID != rid {
		utils.RespondError(c, http.StatusForbidden, services.ErrUnauthorized)
		return
	}

	var req struct {
		Name         *string  `json:"name"`
		Price        *float64 `json:"price"`
		Image        *string  `json:"image"`
		Cuisine      *string  `json:"cuisine"`
		IsVeg        *bool    `json:"is_veg"`
		IsBestseller *bool    `json:"is_bestseller"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Cuisine != nil {
		updates["cuisine"] = *req.Cuisine
	}
	if req.IsVeg != nil {
		updates["is_veg"] = *req.IsVeg
	}
	if req.IsBestseller != nil {
		updates["is_bestseller"] = *req.IsBestseller
	}

	if len(updates) > 0 {
		if err := fc.DB.Model(&food).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dish updated", food)
}

// DeleteFood removes a dish, with the same restaurant scoping as UpdateFood.
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if rid, scoped := fc.scopedRestaurantID(c); scoped && food.RestaurantID != rid {
		utils.RespondError(c, http.StatusForbidden, services.ErrUnauthorized)
		return
	}

	if err := fc.DB.Delete(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"food_id": food.ID})
}

// scopedRestaurantID returns the caller's restaurant when they are a
// restaurant-scoped admin.
func (fc *FoodController) scopedRestaurantID(c *gin.Context) (uint, bool) {
	if c.GetString("role") != models.RoleRestaurantAdmin {
		return 0, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return 0, false
	}
	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil || user.RestaurantID == nil {
		return 0, false
	}
	return *user.RestaurantID, true
}
