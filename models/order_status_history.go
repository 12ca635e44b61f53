package models

import "time"

// OrderStatusHistory is an append-only log. Rows are never updated or
// deleted; one row exists per status the order has passed through.
type OrderStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`
	ChangedAt time.Time `gorm:"not null;autoCreateTime" json:"changed_at"`
}
