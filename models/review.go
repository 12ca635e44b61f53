package models

import "time"

// Review is unique per (user, food) and may only be created once the user
// has a delivered order containing the food.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_food" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FoodID    uint      `gorm:"not null;uniqueIndex:idx_review_user_food" json:"food_id"`
	Food      Food      `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
