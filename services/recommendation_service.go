package services

import (
	"github.com/foodhubapp/foodhub/models"
	"gorm.io/gorm"
)

// DefaultRecommendationLimit caps the menu suggestion list.
const DefaultRecommendationLimit = 3

type RecommendationService struct {
	DB *gorm.DB
}

func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{DB: db}
}

// Recommend suggests foods for a user: foods in cuisines they have ordered
// before, excluding anything already ordered. When that yields nothing
// (including users with no history) it falls back to the globally
// most-ordered foods. Ties and row order break by food ID ascending so the
// result is deterministic.
func (s *RecommendationService) Recommend(userID uint, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	var orderedFoodIDs []uint
	if err := s.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Distinct().
		Pluck("order_items.food_id", &orderedFoodIDs).Error; err != nil {
		return nil, err
	}

	if len(orderedFoodIDs) > 0 {
		var cuisines []string
		if err := s.DB.Model(&models.Food{}).
			Where("id IN ?", orderedFoodIDs).
			Distinct().
			Pluck("cuisine", &cuisines).Error; err != nil {
			return nil, err
		}

		var recommendations []models.Food
		if err := s.DB.
			Where("cuisine IN ? AND id NOT IN ?", cuisines, orderedFoodIDs).
			Order("id ASC").
			Limit(limit).
			Find(&recommendations).Error; err != nil {
			return nil, err
		}
		if len(recommendations) > 0 {
			return recommendations, nil
		}
	}

	var popular []models.Food
	if err := s.DB.Model(&models.Food{}).
		Joins("JOIN order_items ON order_items.food_id = foods.id").
		Group("foods.id").
		Order("SUM(order_items.quantity) DESC, foods.id ASC").
		Limit(limit).
		Find(&popular).Error; err != nil {
		return nil, err
	}

	return popular, nil
}
