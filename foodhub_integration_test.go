package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/router"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newIntegrationApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:integration_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Food{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Review{},
		&models.Coupon{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	restaurant := models.Restaurant{Name: "Main Restaurant", Rating: 4.3, DeliveryTime: "30 mins"}
	db.Create(&restaurant)
	db.Create(&models.Food{Name: "Paneer Tikka", Price: 250, Cuisine: "Indian", IsVeg: true, RestaurantID: restaurant.ID})
	db.Create(&models.Food{Name: "Chicken Biryani", Price: 350, Cuisine: "Indian", RestaurantID: restaurant.ID})
	db.Create(&models.Coupon{Code: "SAVE50", Discount: 50})

	hashed, _ := bcrypt.GenerateFromPassword([]byte("adminpw"), bcrypt.DefaultCost)
	db.Create(&models.User{Username: "admin", Password: string(hashed), Role: models.RoleSuperAdmin})

	return router.SetupRouter(db), db
}

func request(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

// TestOrderLifecycleEndToEnd walks the whole customer journey through the
// real router: register, login, browse, fill the cart, checkout, admin
// drives the order to Delivered, customer reviews and downloads the invoice.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	r, db := newIntegrationApp(t)

	// Register and login.
	w := request(t, r, http.MethodPost, "/register", "", gin.H{
		"username": "journey",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "journey",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	// Unauthenticated menu access is rejected.
	w = request(t, r, http.MethodGet, "/menu", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Browse the menu and pick the first dish.
	w = request(t, r, http.MethodGet, "/menu", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	foods := decode(t, w)["data"].(map[string]interface{})["foods"].([]interface{})
	assert.NotEmpty(t, foods)
	foodID := uint(foods[0].(map[string]interface{})["id"].(float64))

	// Two units of the same dish.
	path := fmt.Sprintf("/cart/items/%d", foodID)
	w = request(t, r, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, http.MethodPost, path+"/increase", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Coupon pricing is per-request only.
	w = request(t, r, http.MethodPost, "/cart/coupon", token, gin.H{"code": "SAVE50"})
	assert.Equal(t, http.StatusOK, w.Code)
	couponData := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 500.0, couponData["total"])
	assert.Equal(t, 450.0, couponData["final_total"])

	// Checkout.
	w = request(t, r, http.MethodPost, "/orders", token, gin.H{
		"payment_method": models.PaymentMethodCOD,
		"address":        "12 Main St",
		"phone":          "9876543210",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	orderData := decode(t, w)["data"].(map[string]interface{})
	orderID := uint(orderData["id"].(float64))
	assert.Equal(t, 500.0, orderData["total"])
	assert.Equal(t, models.StatusPending, orderData["status"])

	// Cart is now empty.
	w = request(t, r, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode(t, w)["data"].(map[string]interface{})["total"])

	// Reviews are locked until delivery.
	w = request(t, r, http.MethodPost, fmt.Sprintf("/foods/%d/reviews", foodID), token, gin.H{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin drives the lifecycle.
	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "admin",
		"password": "adminpw",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	adminToken := decode(t, w)["data"].(map[string]interface{})["token"].(string)

	statusPath := fmt.Sprintf("/admin/orders/%d/status", orderID)
	w = request(t, r, http.MethodPost, statusPath, adminToken, gin.H{"status": models.StatusAccepted})
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, http.MethodPost, statusPath, adminToken, gin.H{"status": models.StatusDelivered})
	assert.Equal(t, http.StatusOK, w.Code)

	// Customer polls the status.
	w = request(t, r, http.MethodGet, fmt.Sprintf("/orders/%d/status", orderID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusDelivered, decode(t, w)["data"].(map[string]interface{})["status"])

	// Cancellation is rejected after delivery.
	w = request(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The review gate is now open, and only once.
	reviewPath := fmt.Sprintf("/foods/%d/reviews", foodID)
	w = request(t, r, http.MethodPost, reviewPath, token, gin.H{"rating": 5, "comment": "great"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = request(t, r, http.MethodPost, reviewPath, token, gin.H{"rating": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Invoice downloads as a PDF.
	w = request(t, r, http.MethodGet, fmt.Sprintf("/orders/%d/invoice", orderID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// Status history is complete and ordered.
	var history []models.OrderStatusHistory
	db.Where("order_id = ?", orderID).Order("id ASC").Find(&history)
	assert.Len(t, history, 3)
	assert.Equal(t, models.StatusPending, history[0].Status)
	assert.Equal(t, models.StatusAccepted, history[1].Status)
	assert.Equal(t, models.StatusDelivered, history[2].Status)

	// Admin dashboard reflects the sale.
	w = request(t, r, http.MethodGet, "/admin/dashboard/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total_orders"])
	assert.Equal(t, 500.0, stats["total_revenue"])

	// Customer tokens cannot reach the admin surface.
	w = request(t, r, http.MethodGet, "/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Logout revokes the token.
	w = request(t, r, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
