package models

import "time"

type Food struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Image        string    `gorm:"type:varchar(255)" json:"image"`
	Cuisine      string    `gorm:"type:varchar(50);index" json:"cuisine"`
	IsVeg        bool      `gorm:"not null;default:true" json:"is_veg"`
	IsBestseller bool      `gorm:"not null;default:false" json:"is_bestseller"`
	RestaurantID uint      `gorm:"index;not null" json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
