package models

import "time"

// OrderItem is a denormalized snapshot of the food at order time. FoodName
// and Price are copied so historical orders survive later catalog edits.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodID    uint      `gorm:"index;not null" json:"food_id"`
	FoodName  string    `gorm:"type:varchar(100);not null" json:"food_name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
