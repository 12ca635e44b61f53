package models

import "time"

// Order lifecycle statuses. Pending -> Accepted -> Delivered is the happy
// path; Cancelled is reachable from Pending or Accepted only. Delivered and
// Cancelled are terminal.
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"

	PaymentStatusPaid     = "Paid"
	PaymentStatusRefunded = "Refunded"

	RefundStatusNone      = "Not Applicable"
	RefundStatusInitiated = "Refund Initiated (Mock)"
)

// IsValidStatus reports whether s is a known lifecycle status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot taken at checkout. Only Status,
// PaymentStatus and RefundStatus change afterwards.
type Order struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	Reference     string               `gorm:"type:varchar(50);unique;not null" json:"reference"`
	UserID        uint                 `gorm:"index;not null" json:"user_id"`
	User          User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Total         float64              `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod string               `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        string               `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	PaymentStatus string               `gorm:"type:varchar(20);not null;default:'Paid'" json:"payment_status"`
	RefundStatus  string               `gorm:"type:varchar(30);not null;default:'Not Applicable'" json:"refund_status"`
	Address       string               `gorm:"type:text" json:"address"`
	Phone         string               `gorm:"type:varchar(15)" json:"phone"`
	OrderItems    []OrderItem          `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
	CreatedAt     time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"not null" json:"updated_at"`
}

// Cancellable reports whether a customer may still cancel the order.
func (o *Order) Cancellable() bool {
	return o.Status == StatusPending || o.Status == StatusAccepted
}
