package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/foodhubapp/foodhub/controllers"
	"github.com/foodhubapp/foodhub/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newReviewRouter(db *gorm.DB, userID uint) *gin.Engine {
	rc := controllers.NewReviewController(db)
	r := gin.New()
	r.POST("/foods/:food_id/reviews", asUser(userID, models.RoleCustomer), rc.CreateReview)
	return r
}

func seedDeliveredOrder(db *gorm.DB, userID uint, food models.Food) {
	order := models.Order{Reference: "ORD-d", UserID: userID, Status: models.StatusDelivered}
	db.Create(&order)
	db.Create(&models.OrderItem{
		OrderID:  order.ID,
		FoodID:   food.ID,
		FoodName: food.Name,
		Price:    food.Price,
		Quantity: 1,
	})
}

func TestCreateReviewAfterDelivery(t *testing.T) {
	db := setupTestDB(t)
	_, foods := seedRestaurantWithFoods(db)

	user := models.User{Username: "eater", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedDeliveredOrder(db, user.ID, foods[0])

	r := newReviewRouter(db, user.ID)
	w := performJSON(t, r, http.MethodPost, fmt.Sprintf("/foods/%d/reviews", foods[0].ID), gin.H{
		"rating":  5,
		"comment": "excellent",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	err := db.Where("user_id = ? AND food_id = ?", user.ID, foods[0].ID).First(&review).Error
	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "excellent", review.Comment)
}

func TestCreateReviewWithoutDeliveredOrder(t *testing.T) {
	db := setupTestDB(t)
	_, foods := seedRestaurantWithFoods(db)

	user := models.User{Username: "impatient", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)

	// A pending order does not unlock reviews.
	order := models.Order{Reference: "ORD-p", UserID: user.ID, Status: models.StatusPending}
	db.Create(&order)
	db.Create(&models.OrderItem{OrderID: order.ID, FoodID: foods[0].ID, FoodName: foods[0].Name, Price: foods[0].Price, Quantity: 1})

	r := newReviewRouter(db, user.ID)
	w := performJSON(t, r, http.MethodPost, fmt.Sprintf("/foods/%d/reviews", foods[0].ID), gin.H{"rating": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReviewForFoodNotInOrder(t *testing.T) {
	db := setupTestDB(t)
	_, foods := seedRestaurantWithFoods(db)

	user := models.User{Username: "sneaky", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedDeliveredOrder(db, user.ID, foods[0])

	// Delivered order exists but never contained foods[2].
	r := newReviewRouter(db, user.ID)
	w := performJSON(t, r, http.MethodPost, fmt.Sprintf("/foods/%d/reviews", foods[2].ID), gin.H{"rating": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReviewDuplicate(t *testing.T) {
	db := setupTestDB(t)
	_, foods := seedRestaurantWithFoods(db)

	user := models.User{Username: "repeat", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedDeliveredOrder(db, user.ID, foods[0])

	r := newReviewRouter(db, user.ID)
	path := fmt.Sprintf("/foods/%d/reviews", foods[0].ID)

	w := performJSON(t, r, http.MethodPost, path, gin.H{"rating": 5})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodPost, path, gin.H{"rating": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Review{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	_, foods := seedRestaurantWithFoods(db)

	user := models.User{Username: "extreme", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedDeliveredOrder(db, user.ID, foods[0])

	r := newReviewRouter(db, user.ID)
	path := fmt.Sprintf("/foods/%d/reviews", foods[0].ID)

	for _, rating := range []int{-1, 6, 100} {
		w := performJSON(t, r, http.MethodPost, path, gin.H{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d must be rejected", rating)
	}
}

func TestCreateReviewUnknownFood(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "lost", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)

	r := newReviewRouter(db, user.ID)
	w := performJSON(t, r, http.MethodPost, "/foods/9999/reviews", gin.H{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
