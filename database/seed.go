package database

import (
	"errors"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/utils"
	"gorm.io/gorm"
)

// Seed inserts baseline rows the app expects: a default restaurant, the
// SAVE50 coupon and a role backfill for pre-existing users. Safe to run on
// every startup.
func Seed(db *gorm.DB) error {
	var restaurantCount int64
	db.Model(&models.Restaurant{}).Count(&restaurantCount)
	if restaurantCount == 0 {
		restaurant := models.Restaurant{
			Name:         "Main Restaurant",
			Rating:       4.3,
			DeliveryTime: "30 mins",
		}
		if err := db.Create(&restaurant).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded default restaurant (id=%d)", restaurant.ID)
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", "SAVE50").First(&coupon).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&models.Coupon{Code: "SAVE50", Discount: 50}).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("Seeded SAVE50 coupon")
	}

	// Users created before roles existed get the customer role.
	if err := db.Model(&models.User{}).
		Where("role IS NULL OR role = ''").
		Update("role", models.RoleCustomer).Error; err != nil {
		return err
	}

	return nil
}
