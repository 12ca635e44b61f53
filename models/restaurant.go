package models

import "time"

type Restaurant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Rating       float64   `gorm:"type:decimal(3,1);not null;default:4.0" json:"rating"`
	DeliveryTime string    `gorm:"type:varchar(20);not null;default:'30 mins'" json:"delivery_time"`
	Foods        []Food    `gorm:"foreignKey:RestaurantID" json:"foods,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
