package models

import "time"

// CartItem holds one food selection for a user. Quantity never drops
// below 1: decrementing a quantity of 1 deletes the row instead.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_food" json:"user_id"`
	FoodID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_food" json:"food_id"`
	Food      Food      `gorm:"foreignKey:FoodID" json:"food"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is the line total at current catalog price.
func (ci *CartItem) Subtotal() float64 {
	return ci.Food.Price * float64(ci.Quantity)
}
