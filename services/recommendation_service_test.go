package services

import (
	"testing"

	"github.com/foodhubapp/foodhub/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedOrderWithItems creates a delivered order holding the given foods so
// recommendation queries have history to work from.
func seedOrderWithItems(db *gorm.DB, userID uint, quantities map[uint]int) {
	order := models.Order{
		Reference:     "ORD-test",
		UserID:        userID,
		Total:         0,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.StatusDelivered,
	}
	db.Create(&order)

	for foodID, qty := range quantities {
		var food models.Food
		db.First(&food, foodID)
		db.Create(&models.OrderItem{
			OrderID:  order.ID,
			FoodID:   foodID,
			FoodName: food.Name,
			Price:    food.Price,
			Quantity: qty,
		})
	}
}

func seedCuisines(db *gorm.DB) []models.Food {
	restaurant := models.Restaurant{Name: "Main Restaurant"}
	db.Create(&restaurant)

	foods := []models.Food{
		{Name: "Dal Makhani", Price: 200, Cuisine: "Indian", RestaurantID: restaurant.ID},
		{Name: "Butter Naan", Price: 50, Cuisine: "Indian", RestaurantID: restaurant.ID},
		{Name: "Masala Dosa", Price: 120, Cuisine: "Indian", RestaurantID: restaurant.ID},
		{Name: "Pasta Alfredo", Price: 280, Cuisine: "Italian", RestaurantID: restaurant.ID},
		{Name: "Sushi Roll", Price: 400, Cuisine: "Japanese", RestaurantID: restaurant.ID},
	}
	for i := range foods {
		db.Create(&foods[i])
	}
	return foods
}

func TestRecommendSameCuisineExcludingOrdered(t *testing.T) {
	db := newTestDB(t)
	foods := seedCuisines(db)

	user := models.User{Username: "bob", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)

	// Bob ordered Dal Makhani -> cuisine affinity is Indian.
	seedOrderWithItems(db, user.ID, map[uint]int{foods[0].ID: 1})

	svc := NewRecommendationService(db)
	recs, err := svc.Recommend(user.ID, 3)
	assert.NoError(t, err)

	assert.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Equal(t, "Indian", rec.Cuisine)
		assert.NotEqual(t, foods[0].ID, rec.ID, "already-ordered food must not be recommended")
	}
}

func TestRecommendRespectsLimit(t *testing.T) {
	db := newTestDB(t)
	foods := seedCuisines(db)

	user := models.User{Username: "carol", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedOrderWithItems(db, user.ID, map[uint]int{foods[0].ID: 1})

	svc := NewRecommendationService(db)
	recs, err := svc.Recommend(user.ID, 1)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(recs), 1)
}

func TestRecommendFallsBackToPopular(t *testing.T) {
	db := newTestDB(t)
	foods := seedCuisines(db)

	// Another user's history drives global popularity.
	other := models.User{Username: "dave", Password: "x", Role: models.RoleCustomer}
	db.Create(&other)
	seedOrderWithItems(db, other.ID, map[uint]int{
		foods[4].ID: 10,
		foods[3].ID: 2,
	})

	newcomer := models.User{Username: "erin", Password: "x", Role: models.RoleCustomer}
	db.Create(&newcomer)

	svc := NewRecommendationService(db)
	recs, err := svc.Recommend(newcomer.ID, 3)
	assert.NoError(t, err)

	assert.NotEmpty(t, recs)
	assert.Equal(t, foods[4].ID, recs[0].ID, "most ordered food comes first")
}

func TestRecommendFallsBackWhenCuisineExhausted(t *testing.T) {
	db := newTestDB(t)
	foods := seedCuisines(db)

	user := models.User{Username: "frank", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)

	// Frank has ordered every Indian dish; cuisine path yields nothing.
	seedOrderWithItems(db, user.ID, map[uint]int{
		foods[0].ID: 1,
		foods[1].ID: 1,
		foods[2].ID: 1,
	})

	svc := NewRecommendationService(db)
	recs, err := svc.Recommend(user.ID, 3)
	assert.NoError(t, err)

	// Fallback is global popularity, so already-ordered foods may appear.
	assert.NotEmpty(t, recs)
}

func TestRecommendNoFoodsAtAll(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Username: "grace", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)

	svc := NewRecommendationService(db)
	recs, err := svc.Recommend(user.ID, 3)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendDeterministic(t *testing.T) {
	db := newTestDB(t)
	foods := seedCuisines(db)

	user := models.User{Username: "heidi", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	seedOrderWithItems(db, user.ID, map[uint]int{foods[0].ID: 1})

	svc := NewRecommendationService(db)
	first, err := svc.Recommend(user.ID, 3)
	assert.NoError(t, err)
	second, err := svc.Recommend(user.ID, 3)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
