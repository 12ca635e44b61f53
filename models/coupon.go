package models

import "time"

// Coupon holds a flat discount amount. Coupons are applied per-request at
// display time and never persisted against a cart or order.
type Coupon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(20);unique;not null" json:"code"`
	Discount  int       `gorm:"not null" json:"discount"`
	CreatedAt time.Time `json:"created_at"`
}
