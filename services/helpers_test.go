package services

import (
	"fmt"
	"testing"

	"github.com/foodhubapp/foodhub/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
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

	return db
}
